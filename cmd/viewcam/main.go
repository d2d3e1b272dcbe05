package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/leterax/go-viewcam/pkg/config"
	"github.com/leterax/go-viewcam/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	log.Println("Starting viewcam...")

	// Parse command line flags
	configPath := flag.String("config", "", "Settings file (empty for defaults)")
	serverAddr := flag.String("server", "", "Server address (empty for singleplayer)")
	playerName := flag.String("name", "Player", "Player name")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		var err error
		settings, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}

	viewer, err := render.NewViewer(settings, log.Default())
	if err != nil {
		log.Fatalf("Failed to initialize viewer: %v", err)
	}

	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("Settings will not reload: %v", err)
		} else {
			defer watcher.Close()
			viewer.Watch(watcher.Updates, watcher.Errors)
		}
	}

	if *serverAddr != "" {
		if err := viewer.Connect(*serverAddr, *playerName); err != nil {
			log.Fatalf("Failed to connect to %s: %v", *serverAddr, err)
		}
		log.Printf("Connected to %s as %s", *serverAddr, *playerName)
	}

	viewer.Run()
}
