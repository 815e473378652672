package server

import (
	"net/http"
	"syscall"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestGracefulServer_ConfigReload tests configuration reload via SIGHUP
func TestGracefulServer_ConfigReload(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil) // Use :0 for random port

	go func() {
		if err := gs.Start(); err != nil {
			t.Logf("Server stopped: %v", err)
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("Failed to send SIGHUP: %v", err)
	}

	// Wait for reload to be processed
	time.Sleep(200 * time.Millisecond)

	// A reload must never trigger shutdown
	if gs.IsShuttingDown() {
		t.Error("Server should not be shutting down after SIGHUP")
	}

	if err := gs.Shutdown(1 * time.Second); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
}

// TestGracefulServer_ReloadConfig tests the ReloadConfig method
func TestGracefulServer_ReloadConfig(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil)

	reloadCalled := false
	gs.SetConfigReloadFunc(func() error {
		reloadCalled = true
		return nil
	})

	if err := gs.ReloadConfig(); err != nil {
		t.Errorf("ReloadConfig() error = %v", err)
	}
	if !reloadCalled {
		t.Error("Config reload function was not called")
	}
}

// TestGracefulServer_ReloadConfigWithError tests error handling during reload
func TestGracefulServer_ReloadConfigWithError(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil)

	gs.SetConfigReloadFunc(func() error {
		return http.ErrServerClosed
	})

	err := gs.ReloadConfig()
	if err == nil {
		t.Error("ReloadConfig() expected error, got nil")
	}
	if err != http.ErrServerClosed {
		t.Errorf("ReloadConfig() error = %v, want %v", err, http.ErrServerClosed)
	}
}

// TestGracefulServer_ShutdownIdempotent verifies repeated shutdowns are safe
func TestGracefulServer_ShutdownIdempotent(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil)

	if err := gs.Shutdown(time.Second); err != nil {
		t.Errorf("first Shutdown error: %v", err)
	}
	if err := gs.Shutdown(time.Second); err != nil {
		t.Errorf("second Shutdown error: %v", err)
	}

	select {
	case <-gs.ShutdownChannel():
	default:
		t.Error("shutdown channel should be closed")
	}
}
