package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/texmexdex/motherchord/player"
	"github.com/texmexdex/motherchord/sequence"
	"github.com/texmexdex/motherchord/tables"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Plays a score on the first MIDI output",
	Long:  `Plays DSL text or a saved project document on the first available MIDI output port.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		runPlay(path)
	},
}

func runPlay(path string) {
	defer midi.CloseDriver()

	song := loadSongArg(path)
	events := sequence.NewCompiler(tables.Default()).Compile(song)

	out, err := midi.OutPort(0)
	if err != nil {
		fmt.Println("no MIDI output port available")
		return
	}
	send, err := midi.SendTo(out)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	p := player.New(&midiSink{send: send})
	p.Load(events, song.DurationSeconds())
	p.Play()
	fmt.Printf("playing %q (%.1fs)\n", song.Title, p.Duration())

	for p.Playing() {
		time.Sleep(100 * time.Millisecond)
	}
	p.Stop()
}

// midiSink forwards player events to a gomidi output port.
type midiSink struct {
	send func(midi.Message) error
}

func (s *midiSink) NoteOn(channel, pitch, velocity uint8) {
	s.send(midi.NoteOn(channel, pitch, velocity))
}

func (s *midiSink) NoteOff(channel, pitch uint8) {
	s.send(midi.NoteOff(channel, pitch))
}

func (s *midiSink) Silence() {
	for ch := uint8(0); ch < 16; ch++ {
		s.send(midi.ControlChange(ch, 123, 0)) // all notes off
	}
}
