package main

import (
	"os"

	"github.com/leshachaplin/convrelay/app"
	"github.com/leshachaplin/convrelay/internal/config"
)

func main() {
	app.New(func() (config.Config, error) {
		return config.Load(os.Getenv("CONFIG_PATH"))
	}).Start()
}
