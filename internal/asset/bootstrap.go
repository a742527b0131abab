// Package asset performs the one-shot optional glTF/GLB download of
// spec.md §7d: best-effort, logged, never fatal to startup.
package asset

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-kit/log"

	marsmission "github.com/neoragex2002/mars-mission"
)

// Bootstrap downloads the model at url into destPath if it does not
// already exist, validating the GLB container structure. Failure is
// logged and swallowed: startup proceeds and clients fall back to a
// procedural model (spec.md §7d).
func Bootstrap(logger log.Logger, url, destPath string) {
	if url == "" || destPath == "" {
		return
	}
	if _, err := os.Stat(destPath); err == nil {
		if verr := validateGLB(destPath); verr != nil {
			logger.Log("level", "warning", "subsys", "asset", "status", "present but invalid, re-downloading", "err", verr)
			os.Remove(destPath)
		} else {
			logger.Log("level", "info", "subsys", "asset", "status", "already present", "path", destPath)
			return
		}
	}
	if err := download(url, destPath); err != nil {
		logger.Log("level", "warning", "subsys", "asset", "status", "bootstrap failed, using procedural fallback", "err", fmt.Errorf("%w: %s", marsmission.ErrAssetFailure, err))
		return
	}
	logger.Log("level", "info", "subsys", "asset", "status", "downloaded", "path", destPath)
}

func download(url, destPath string) error {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	tmp := destPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	f.Close()

	if err := validateGLB(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, destPath)
}

// glTFJSONChunk is the minimal shape validateGLB checks, mirroring
// original_source/backend/main.py's _validate_glb_file.
type glTFJSONChunk struct {
	Asset  json.RawMessage   `json:"asset"`
	Scenes []json.RawMessage `json:"scenes"`
	Nodes  []json.RawMessage `json:"nodes"`
}

// validateGLB checks the binary glTF (GLB) container structure: a
// 12-byte header (magic "glTF", version 2, total length matching the
// file size), a first chunk of type "JSON", and a JSON payload with a
// non-empty asset/scenes/nodes shape.
func validateGLB(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() < 20 {
		return fmt.Errorf("GLB too small: %d bytes", info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var header [12]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return fmt.Errorf("GLB header truncated: %w", err)
	}
	magic := header[0:4]
	version := binary.LittleEndian.Uint32(header[4:8])
	length := binary.LittleEndian.Uint32(header[8:12])
	if string(magic) != "glTF" {
		return fmt.Errorf("invalid GLB magic %q", magic)
	}
	if version != 2 {
		return fmt.Errorf("unsupported GLB version %d", version)
	}
	if int64(length) != info.Size() {
		return fmt.Errorf("GLB length mismatch (header=%d, file=%d)", length, info.Size())
	}

	var chunkHeader [8]byte
	if _, err := io.ReadFull(f, chunkHeader[:]); err != nil {
		return fmt.Errorf("GLB missing first chunk header: %w", err)
	}
	chunkLen := binary.LittleEndian.Uint32(chunkHeader[0:4])
	chunkType := chunkHeader[4:8]
	if string(chunkType) != "JSON" {
		return fmt.Errorf("GLB first chunk is not JSON: %q", chunkType)
	}
	if chunkLen == 0 {
		return fmt.Errorf("GLB JSON chunk is empty")
	}

	chunk := make([]byte, chunkLen)
	if _, err := io.ReadFull(f, chunk); err != nil {
		return fmt.Errorf("GLB JSON chunk truncated: %w", err)
	}

	var payload glTFJSONChunk
	if err := json.Unmarshal(chunk, &payload); err != nil {
		return fmt.Errorf("invalid GLB JSON chunk: %w", err)
	}
	if len(payload.Asset) == 0 {
		return fmt.Errorf("invalid glTF JSON (missing asset)")
	}
	if len(payload.Scenes) == 0 {
		return fmt.Errorf("invalid glTF JSON (missing scenes)")
	}
	if len(payload.Nodes) == 0 {
		return fmt.Errorf("invalid glTF JSON (missing nodes)")
	}
	return nil
}
