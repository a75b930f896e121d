// Command export generates a script from a saved project JSON file, for
// offline use without the API server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"sceneforge/audio"
	"sceneforge/elements"
	"sceneforge/script"
	"sceneforge/settings"
	"sceneforge/types"
)

// projectFile mirrors the persisted project record.
type projectFile struct {
	Name     string                 `json:"name"`
	Scenes   []types.Scene          `json:"scenes"`
	Bags     map[int]*elements.Bag  `json:"elementBags"`
	Settings settings.VideoSettings `json:"settings"`
}

func main() {
	in := flag.String("in", "", "path to project JSON (required)")
	out := flag.String("out", "", "output path for the script (default stdout)")
	decode := flag.Bool("decode-audio", true, "decode MP3 payloads for exact durations")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read project: %v", err)
	}
	var pf projectFile
	if err := json.Unmarshal(data, &pf); err != nil {
		log.Fatalf("parse project: %v", err)
	}

	els := elements.NewStore(nil)
	els.Restore(pf.Bags)
	if pf.Settings.Resolution.Width == 0 {
		pf.Settings = settings.Default()
	}

	var dec audio.Decoder
	if *decode {
		dec = audio.NewMP3Decoder()
	}

	sc, err := script.NewGenerator(nil).Generate(context.Background(), pf.Scenes, els, pf.Settings, dec)
	if err != nil {
		log.Fatalf("generate script: %v", err)
	}

	encoded, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		log.Fatalf("encode script: %v", err)
	}

	if *out == "" {
		fmt.Println(string(encoded))
		return
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		log.Fatalf("write script: %v", err)
	}
	log.Printf("wrote script for %q (%d scenes) to %s", pf.Name, len(sc.Scenes), *out)
}
