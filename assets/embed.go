package assets

import "embed"

// Small built-in datasets so the server can run without any configured
// dataset directory. Production deployments point DATASET_DIR at fuller
// files with the same record shape, and the word-list env knobs at full
// answer/allowed lists.

//go:embed champions.json crew.json answers.txt allowed.txt
var FS embed.FS

// Dataset returns the embedded dataset file by name.
func Dataset(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
