// Command grblsrv serves attached grbl / grblHAL controllers over
// HTTP.  Devices listed in the config are attached at startup; the
// rest of the fleet can be attached and driven through the API.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	yml "github.com/go-yaml/yaml"

	"goji.io"

	"github.com/vgerber/grbl-interface/generichttp/cnc"
	"github.com/vgerber/grbl-interface/service"
)

var (
	// Version is the version number.  Typically injected via ldflags with git build
	Version = "dev"

	// ConfigFileName is what it sounds like
	ConfigFileName = "grblsrv.yml"

	k = koanf.New(".")
)

// DeviceSetup names one controller to attach at startup.
type DeviceSetup struct {
	// Port is the serial port the controller enumerates as,
	// e.g. /dev/ttyACM0
	Port string `koanf:"port" yaml:"port"`

	// PollHz, when nonzero, enables periodic status report polling
	// at that rate
	PollHz float64 `koanf:"pollHz" yaml:"pollHz"`
}

// Config holds the server listen address and the startup device list.
type Config struct {
	Addr    string        `koanf:"addr" yaml:"addr"`
	Devices []DeviceSetup `koanf:"devices" yaml:"devices"`
}

func defaults() Config {
	return Config{Addr: ":8000"}
}

func setupconfig() {
	k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
		errtxt := err.Error()
		if !strings.Contains(errtxt, "no such") { // file missing, who cares
			log.Fatalf("error loading config: %v", err)
		}
	}
}

func root() {
	str := `grblsrv talks to grbl and grblHAL CNC controllers and exposes an HTTP interface to them.
This enables a server-client architecture,
and the clients can leverage the excellent HTTP
libraries for any programming language,
instead of custom serial logic.

Usage:
	grblsrv <command>

Commands:
	run
	help
	mkconf
	conf
	version`
	fmt.Println(str)
}

func help() {
	str := `grblsrv is amenable to configuration via its .yaml file.  For a primer on YAML, see
https://yaml.org/start.html

When no configuration is provided, the defaults are used.
The command mkconf generates the configuration file with the default values.
Each entry under devices names a serial port to attach at startup; pollHz
enables periodic status polling for that controller.`
	fmt.Println(str)
}

func mkconf() {
	c := Config{}
	if err := k.Unmarshal("", &c); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := yml.NewEncoder(f).Encode(c); err != nil {
		log.Fatal(err)
	}
}

func printconf() {
	c := Config{}
	k.Unmarshal("", &c)
	if err := yml.NewEncoder(os.Stdout).Encode(c); err != nil {
		log.Fatal(err)
	}
}

func pversion() {
	fmt.Printf("grblsrv version %v\n", Version)
}

func run() {
	c := Config{}
	if err := k.Unmarshal("", &c); err != nil {
		log.Fatal(err)
	}

	svc := service.New()
	defer svc.Close()
	for _, dev := range c.Devices {
		desc := service.DeviceDescription{ID: dev.Port, Kind: service.Serial}
		if err := svc.OpenDevice(desc); err != nil {
			log.Fatalf("attach %s: %v", dev.Port, err)
		}
		log.Printf("attached %s", dev.Port)
		if dev.PollHz > 0 {
			if err := svc.EnableStatusPolling(dev.Port, dev.PollHz); err != nil {
				log.Fatalf("poll %s: %v", dev.Port, err)
			}
		}
	}

	mux := goji.NewMux()
	cnc.NewHTTPDeviceService(svc).RT().Bind(mux)
	log.Println("now listening for requests at", c.Addr)
	log.Fatal(http.ListenAndServe(c.Addr, mux))
}

func main() {
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	setupconfig()
	switch strings.ToLower(args[1]) {
	case "help":
		help()
	case "mkconf":
		mkconf()
	case "conf":
		printconf()
	case "version":
		pversion()
	case "run":
		run()
	default:
		root()
	}
}
