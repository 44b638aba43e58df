package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texmexdex/motherchord/midigen"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.mid]",
	Short: "Inspects an exported MIDI file",
	Long:  `Inspects an exported MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := midigen.ReadFile(path)
	if err != nil {
		panic("Could not read midi file: " + err.Error())
	}

	fmt.Printf("tracks: %v\n", len(s.Tracks))
	for i, track := range s.Tracks {
		name := ""
		noteOns := 0
		for _, evt := range track {
			var text string
			if evt.Message.GetMetaTrackName(&text) {
				name = text
			}
			var channel, key, velocity uint8
			if evt.Message.GetNoteOn(&channel, &key, &velocity) {
				noteOns++
			}
		}
		fmt.Printf("track %v: name=%q noteOns=%v\n", i, name, noteOns)
	}
}
