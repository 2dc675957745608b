package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/utils"
)

const defaultConfigPath = "config.json"

func main() {
	config, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	eng, err := play(config)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Stopped after %d generations with %d living cells\n", eng.Generation(), eng.Population())
}

// play opens the front end, builds an engine that fits it and runs until the user quits.
// The front end is closed before returning so errors print to a restored terminal.
func play(config utils.Config) (*engine.Engine, error) {
	fe, err := newFrontend()
	if err != nil {
		return nil, err
	}
	defer fe.close()

	config = fe.fit(config)
	eng, err := engine.New(config)
	if err != nil {
		return nil, err
	}
	return eng, fe.run(eng, config)
}

// loadConfig layers defaults, the JSON config file and command-line flags, in that order.
// A missing default config file is not an error; a missing file named with -config is.
func loadConfig(args []string) (utils.Config, error) {
	pre := flag.NewFlagSet("go-life", flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	path := pre.String("config", defaultConfigPath, "path to a JSON config file")
	scratch := utils.DefaultConfig()
	scratch.Bind(pre)
	// Errors resurface from the full parse below
	_ = pre.Parse(args)

	config, err := utils.LoadConfig(*path)
	if err != nil {
		if *path != defaultConfigPath || !os.IsNotExist(errors.Cause(err)) {
			return config, err
		}
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	fs := flag.NewFlagSet("go-life", flag.ContinueOnError)
	fs.String("config", defaultConfigPath, "path to a JSON config file")
	config.Bind(fs)
	if err = fs.Parse(args); err != nil {
		return config, err
	}

	return config, config.Validate()
}
