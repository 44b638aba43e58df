package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texmexdex/motherchord/dsl"
	"github.com/texmexdex/motherchord/file"
	"github.com/texmexdex/motherchord/model"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parses song DSL text into a score document",
	Long:  `Parses song DSL text (from a file or stdin) and prints the score as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		runParse(path)
	},
}

func runParse(path string) {
	song, res := dsl.Parse(readInput(path))
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	if song == nil {
		panic("Parse failed: " + res.Errors[0])
	}
	data, err := song.ToJSON()
	if err != nil {
		panic("Could not serialize song: " + err.Error())
	}
	fmt.Println(string(data))
}

// readInput reads a file argument, or stdin when the argument is empty
// or "-".
func readInput(path string) string {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			panic("Could not read stdin: " + err.Error())
		}
		return string(data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Could not read file: " + err.Error())
	}
	return string(data)
}

// loadSongArg loads a score from either a saved project document (.json)
// or DSL text.
func loadSongArg(path string) *model.Song {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		song, err := file.LoadSong(path)
		if err != nil {
			panic("Could not load project: " + err.Error())
		}
		return song
	}
	song, res := dsl.Parse(readInput(path))
	if song == nil {
		panic("Parse failed: " + res.Errors[0])
	}
	return song
}
