package cmd

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/texmexdex/motherchord/dsl"
	"github.com/texmexdex/motherchord/midigen"
	"github.com/texmexdex/motherchord/model"
	"github.com/texmexdex/motherchord/tables"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves parse/export over HTTP",
	Long:  `Serves parse/export over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func getListenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// HandleParse parses the request body as DSL text and returns the score
// document with any diagnostics.
func HandleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "could not read request body", 400)
		return
	}

	song, res := dsl.Parse(string(body))
	if song == nil {
		w.WriteHeader(422)
		json.NewEncoder(w).Encode(model.ParseResponse{Errors: res.Errors, Warnings: res.Warnings})
		return
	}

	json.NewEncoder(w).Encode(model.ParseResponse{Score: song, Warnings: res.Warnings})
}

// HandleExport parses the request body and streams back a .mid file.
func HandleExport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "could not read request body", 400)
		return
	}

	song, res := dsl.Parse(string(body))
	if song == nil {
		writeError(w, res.Errors[0], 422)
		return
	}

	s, err := midigen.NewGenerator(tables.Default()).Generate(song)
	if err != nil {
		writeError(w, err.Error(), 422)
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	if _, err := s.WriteTo(w); err != nil {
		log.Printf("export write failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", HandleParse).Methods("POST")
	router.HandleFunc("/export", HandleExport).Methods("POST")

	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(getListenAddr(), handler))
}
