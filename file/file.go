// Package file persists songs as project documents so a score can be
// reopened without re-parsing DSL text.
package file

import (
	"fmt"
	"os"

	"github.com/texmexdex/motherchord/model"
)

func SaveSong(song *model.Song, path string) error {
	data, err := song.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing song: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}

func LoadSong(path string) (*model.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	song, err := model.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding project file: %w", err)
	}
	return song, nil
}
