package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motherchord",
	Short: "Song DSL compiler and MIDI tools",
	Long:  `Parses AI-generated song text into a score, exports standard MIDI files and plays scores on a live MIDI output.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
