// Command grblterm is an interactive line console for a single
// controller: it attaches, waits for the firmware to identify itself,
// then relays typed commands and prints everything the device says.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/theckman/yacspin"

	"github.com/vgerber/grbl-interface/comm"
	"github.com/vgerber/grbl-interface/device"
	"github.com/vgerber/grbl-interface/grbl"
)

func main() {
	var (
		port string
		baud int
		wait time.Duration
	)
	flag.StringVar(&port, "port", "", "serial port of the controller (default: first USB port found)")
	flag.IntVar(&baud, "baud", comm.DefaultBaudRate, "baud rate")
	flag.DurationVar(&wait, "wait", 10*time.Second, "how long to wait for the firmware identity")
	flag.Parse()

	if port == "" {
		ports := comm.FindSerialPorts()
		if len(ports) == 0 {
			log.Fatal("no USB serial ports found; pass -port explicitly")
		}
		port = ports[0].Name
	}

	spinner, err := yacspin.New(yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[59],
		Suffix:          " " + port,
		SuffixAutoColon: true,
		Message:         "connecting",
		StopCharacter:   "✓",
		StopColors:      []string{"fgGreen"},
	})
	if err != nil {
		log.Fatal(err)
	}
	spinner.Start()

	endpoint := comm.NewSerialEndpoint(port, baud)
	if err := endpoint.Open(); err != nil {
		spinner.StopFail()
		log.Fatal(err)
	}
	defer endpoint.Close()

	spinner.Message("waiting for identity")
	info := device.NewDeviceInfo(port)
	if err := endpoint.Write(grbl.GetInfoExtended + "\n"); err != nil {
		spinner.StopFail()
		log.Fatal(err)
	}

	deadline := time.Now().Add(wait)
	for info.Firmware.Version == nil && time.Now().Before(deadline) {
		for _, line := range endpoint.ReadNewMessages(100 * time.Millisecond) {
			// unknown banner lines are expected during startup
			device.ReadResponse(line, info)
		}
	}
	spinner.Stop()

	if v := info.Firmware.Version; v != nil {
		fmt.Printf("connected: %s %s (%s)\n", v.Name, v.Version, port)
	} else {
		fmt.Printf("connected: %s (no identity within %v)\n", port, wait)
	}
	if b := info.Firmware.Board.Name; b != "" {
		fmt.Printf("board: %s\n", b)
	}
	fmt.Println("type commands; realtime characters ? ~ ! are sent unterminated; ctrl-d exits")

	// printer: relay everything the controller says
	go func() {
		for {
			for _, line := range endpoint.ReadNewMessages(100 * time.Millisecond) {
				fmt.Printf("< %s\n", line)
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := scanner.Text()
		if cmd == "" {
			continue
		}
		if grbl.HasStatusResponse(cmd) {
			cmd += "\n"
		}
		if err := endpoint.Write(cmd); err != nil {
			log.Printf("write: %v", err)
		}
	}
}
