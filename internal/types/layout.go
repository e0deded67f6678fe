package types

// SearchPath is a directory registered for layout lookups together with
// its precedence.  Larger priorities are probed first.
type SearchPath struct {
	Directory string `yaml:"dir"`
	Priority  int    `yaml:"priority"`
}

// ResolvedLayout is the outcome of a successful layout resolution.
type ResolvedLayout struct {
	// Path is the absolute, symlink-free location of the layout file.
	Path string

	// Extension is the extension the file was probed with, without the
	// leading dot.
	Extension string

	// Directory is the search root that produced the match.
	Directory string

	// Name is the sanitized logical name, e.g. "fringe/division".
	Name string
}

// PathsManifest is the top-level structure of a paths.yaml file.  It
// seeds a search path registry from disk.
//
//	manifest_version: "v1"
//	default_extension: default
//	paths:
//	  - dir: layouts1
//	    priority: 1
//	  - dir: layouts2
//	    priority: 2
//
// Relative directories are resolved against the manifest's directory.
type PathsManifest struct {
	ManifestVersion  string       `yaml:"manifest_version"`
	DefaultExtension string       `yaml:"default_extension,omitempty"`
	Paths            []SearchPath `yaml:"paths"`
}
