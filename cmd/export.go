package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/texmexdex/motherchord/midigen"
	"github.com/texmexdex/motherchord/tables"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output .mid path (defaults to the song title)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Exports a score to a MIDI file",
	Long:  `Exports DSL text or a saved project document to a standard MIDI file.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		runExport(path, exportOut)
	},
}

func runExport(path, out string) {
	song := loadSongArg(path)

	if out == "" {
		base := strings.TrimSpace(song.Title)
		if base == "" {
			base = uuid.New().String()
		}
		out = base + ".mid"
	}

	gen := midigen.NewGenerator(tables.Default())
	if err := gen.Save(song, out); err != nil {
		panic("Could not export midi: " + err.Error())
	}
	fmt.Printf("wrote %v (%v bars, %.1fs)\n", out, song.TotalBars(), song.DurationSeconds())
}
