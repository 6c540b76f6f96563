// Package sink holds the host side effects of report generation: delivering
// a finished document and copying a share link.
package sink

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// Downloader delivers a finished document to the user.
type Downloader interface {
	Download(ctx context.Context, filename string, content []byte, contentType string) error
}

// Clipboard receives share links.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// DirDownloader writes documents into a directory.
type DirDownloader struct {
	Dir string
}

// separators are replaced in saved filenames, as a browser download does.
var separators = strings.NewReplacer("/", "-", "\\", "-")

// SafeName maps path separators in filename to "-" so the result names a
// file directly inside the download directory.
func SafeName(filename string) string {
	return separators.Replace(filename)
}

// Download writes content to Dir/SafeName(filename) through a temporary file
// so a failed write never leaves a partial document behind.
func (d DirDownloader) Download(ctx context.Context, filename string, content []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	filename = SafeName(filename)
	if filename == "" || filename == "." || filename == ".." || filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename %q", filename)
	}
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.Dir, "."+filename+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filename, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", filename, err)
	}
	return os.Rename(tmp.Name(), d.Path(filename))
}

// Path returns where filename is written.
func (d DirDownloader) Path(filename string) string {
	return filepath.Join(d.Dir, SafeName(filename))
}

// WriterClipboard prints share links to a writer. With OSC52 set it also
// emits the OSC 52 escape sequence so terminals that support it place the
// text on the system clipboard.
type WriterClipboard struct {
	W     io.Writer
	OSC52 bool
}

// NewTerminalClipboard returns a clipboard on f that uses OSC 52 when f is a terminal.
func NewTerminalClipboard(f *os.File) *WriterClipboard {
	return &WriterClipboard{W: f, OSC52: term.IsTerminal(int(f.Fd()))}
}

// Copy implements Clipboard.
func (c *WriterClipboard) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.W == nil {
		return fmt.Errorf("clipboard has no writer")
	}
	if c.OSC52 {
		if _, err := fmt.Fprintf(c.W, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(c.W, text)
	return err
}
