package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// CardImages holds the two card images shown during a condition's trials.
type CardImages struct {
	Left  string
	Right string
}

// Images looks up "<id>_left.*" and "<id>_right.*" in dir. Missing images
// leave the corresponding field empty.
func Images(dir, id string) CardImages {
	var imgs CardImages
	entries, err := os.ReadDir(dir)
	if err != nil {
		return imgs
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		switch stem {
		case id + "_left":
			if imgs.Left == "" {
				imgs.Left = filepath.Join(dir, name)
			}
		case id + "_right":
			if imgs.Right == "" {
				imgs.Right = filepath.Join(dir, name)
			}
		}
	}
	return imgs
}
