package util

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler removes the temp file of an in-flight output write
// when the process is interrupted.
func SetupInterruptHandler(outputPath string) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Cleaning up...")

		CleanupTempFile(outputPath)
		fmt.Println("\nExiting due to interrupt.")

		os.Exit(1)
	}()
}

func CleanupTempFile(outputPath string) {
	tmp := TempPath(outputPath)
	if _, err := os.Stat(tmp); err != nil {
		return
	}

	if err := os.Remove(tmp); err != nil {
		fmt.Printf("Error cleaning up %s: %v\n", tmp, err)
	} else {
		fmt.Printf("Removed %s\n", tmp)
	}
}
