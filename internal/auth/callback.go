package auth

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
)

// WaitForCallback starts a local HTTP server on port and waits for the
// provider's sign-in redirect. The provider delivers the token pair in
// fragment syntax; the served page forwards it to /capture as a query string
// so the server can read it. Returns the captured payload or an error.
func WaitForCallback(ctx context.Context, port string) (RedirectPayload, error) {
	payloadChan := make(chan RedirectPayload, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		// The tokens arrive after '#', which never reaches the server.
		// Serve a page that re-submits the fragment as a query string.
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>Completing sign-in...<script>
window.location = "/capture?" + window.location.hash.substring(1);
</script></body></html>`)
	})
	mux.HandleFunc("/capture", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if errStr := q.Get("error"); errStr != "" {
			http.Error(w, "Sign-in failed: "+errStr, http.StatusBadRequest)
			errChan <- fmt.Errorf("sign-in failed: %s", errStr)
			return
		}

		p := RedirectPayload{
			AccessToken:  q.Get("access_token"),
			RefreshToken: q.Get("refresh_token"),
		}
		if p.AccessToken == "" || p.RefreshToken == "" {
			http.Error(w, "No tokens received", http.StatusBadRequest)
			errChan <- fmt.Errorf("no tokens received")
			return
		}

		w.Write([]byte("Sign-in successful! You can close this window and return to the terminal."))
		payloadChan <- p
	})

	server := &http.Server{Addr: port, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	defer server.Close()

	select {
	case p := <-payloadChan:
		return p, nil
	case err := <-errChan:
		return RedirectPayload{}, err
	case <-ctx.Done():
		return RedirectPayload{}, ctx.Err()
	}
}

// OpenBrowser launches the system browser at url.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
