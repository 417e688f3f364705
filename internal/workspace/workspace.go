package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Workspace performs the local filesystem actions behind structured intents.
// Everything it creates lives under the configured output root.
type Workspace struct {
	root      string
	templates map[string]Template
}

func New(root string, templates map[string]Template) (*Workspace, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	if templates == nil {
		templates = builtinTemplates()
	}
	return &Workspace{root: root, templates: templates}, nil
}

func (w *Workspace) Root() string { return w.root }

// resolveDir maps a spoken directory reference to a path under the root.
// Absolute paths and parent traversal are rejected; an empty reference means
// the root itself.
func (w *Workspace) resolveDir(path string) (string, error) {
	dir := strings.TrimSpace(path)
	if dir == "" {
		return w.root, nil
	}
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("directory %q must be relative to the workspace", dir)
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("directory %q escapes the workspace", dir)
	}
	return filepath.Join(w.root, clean), nil
}

// safeName rejects names that would escape the workspace.
func safeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("a name is required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("name %q must not contain path separators", name)
	}
	return name, nil
}

// CreateProject scaffolds a project directory for the given kind and returns
// a spoken confirmation.
func (w *Workspace) CreateProject(name, kind string) (string, error) {
	name, err := safeName(name)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(w.root, "projects", name)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("project %q already exists", name)
	}

	files := map[string]string{
		"README.md": fmt.Sprintf("# %s\n\nCreated by Aria on %s.\n", name, time.Now().Format("2006-01-02")),
	}
	dirs := []string{}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "python":
		dirs = append(dirs, "src", "tests", "docs")
		files["requirements.txt"] = "# Add your dependencies here\n"
		files[filepath.Join("src", "__init__.py")] = ""
	case "go":
		dirs = append(dirs, "cmd", "internal")
		files["go.mod"] = fmt.Sprintf("module %s\n\ngo 1.24\n", strings.ToLower(name))
	case "web", "node":
		files["index.html"] = fmt.Sprintf("<!doctype html>\n<html>\n<head><title>%s</title></head>\n<body></body>\n</html>\n", name)
		files["styles.css"] = ""
	default:
		dirs = append(dirs, "notes")
		kind = "generic"
	}

	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("create project directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create project directory: %w", err)
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create project directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write project file %s: %w", rel, err)
		}
	}

	return fmt.Sprintf("Created a %s project called %s in %s.", kind, name, dir), nil
}

// CreateFile writes a templated file under the documents directory. A
// non-empty bodyOverride replaces the template body (used for templates the
// user has taught the assistant).
func (w *Workspace) CreateFile(name, templateName, bodyOverride string) (string, error) {
	name, err := safeName(name)
	if err != nil {
		return "", err
	}

	tmpl, ok := w.templates[strings.ToLower(strings.TrimSpace(templateName))]
	if !ok {
		tmpl = w.templates["basic"]
	}
	body := renderTemplate(tmpl, name, time.Now())
	if strings.TrimSpace(bodyOverride) != "" {
		body = renderTemplate(Template{Body: bodyOverride, Extension: tmpl.Extension}, name, time.Now())
	}

	dir := filepath.Join(w.root, "documents")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create documents directory: %w", err)
	}
	path := filepath.Join(dir, name+tmpl.Extension)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return fmt.Sprintf("Created %s from the %s template.", path, tmpl.Name), nil
}

var extensionClasses = map[string]string{
	".txt": "documents", ".md": "documents", ".pdf": "documents", ".doc": "documents", ".docx": "documents",
	".png": "images", ".jpg": "images", ".jpeg": "images", ".gif": "images", ".svg": "images",
	".mp3": "audio", ".wav": "audio", ".flac": "audio",
	".mp4": "video", ".mov": "video", ".mkv": "video",
	".go": "code", ".py": "code", ".js": "code", ".ts": "code", ".rs": "code", ".c": "code", ".h": "code",
	".zip": "archives", ".tar": "archives", ".gz": "archives",
}

// OrganizeFiles sorts the files of a directory into subdirectories by
// extension class. An empty path organizes the workspace root.
func (w *Workspace) OrganizeFiles(path string) (string, error) {
	dir, err := w.resolveDir(path)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read directory: %w", err)
	}

	moved := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		class, ok := extensionClasses[strings.ToLower(filepath.Ext(e.Name()))]
		if !ok {
			class = "other"
		}
		target := filepath.Join(dir, class)
		if err := os.MkdirAll(target, 0o755); err != nil {
			return "", fmt.Errorf("create %s directory: %w", class, err)
		}
		if err := os.Rename(filepath.Join(dir, e.Name()), filepath.Join(target, e.Name())); err != nil {
			return "", fmt.Errorf("move %s: %w", e.Name(), err)
		}
		moved++
	}
	return fmt.Sprintf("Organized %d files in %s by type.", moved, dir), nil
}

// AnalyzeDirectory reports file, directory, and byte counts for a tree.
func (w *Workspace) AnalyzeDirectory(path string) (string, error) {
	dir, err := w.resolveDir(path)
	if err != nil {
		return "", err
	}

	var files, dirs int
	var bytes int64
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		if d.IsDir() {
			dirs++
			return nil
		}
		files++
		if info, err := d.Info(); err == nil {
			bytes += info.Size()
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walk directory: %w", err)
	}

	return fmt.Sprintf("%s contains %d files and %d directories, %.2f megabytes in total.",
		dir, files, dirs, float64(bytes)/(1024*1024)), nil
}
