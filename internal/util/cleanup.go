package util

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler removes the given partial output files and exits
// when the process receives SIGINT or SIGTERM. The returned func stops
// watching and should be called once the output is complete.
func SetupInterruptHandler(partial ...string) (stop func()) {
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sig:
		case <-done:
			return
		}

		fmt.Println("\nInterrupt received. Cleaning up...")
		for _, p := range partial {
			RemovePartial(p)
		}
		fmt.Println("Exiting due to interrupt.")

		os.Exit(1)
	}()

	return func() {
		signal.Stop(sig)
		close(done)
	}
}

func RemovePartial(path string) {
	if err := os.Remove(path); err == nil {
		fmt.Printf("Removed %s\n", path)
	} else if !os.IsNotExist(err) {
		fmt.Printf("Error cleaning up %s: %v\n", path, err)
	}
}
