package payloadreaderservice

import (
	"fmt"
	"os"
	"path/filepath"

	cache "github.com/RobsonDevCode/growmate-probe/internal/caching"
	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
	probeerrors "github.com/RobsonDevCode/growmate-probe/internal/probeErrors"
)

type PayloadReaderService interface {
	ReadPayload(path string) ([]byte, error)
	ListPayloadFiles(dir string) ([]string, error)
}

type PayloadReader struct {
	cache *cache.Cache
}

func NewPayloadReader(cache *cache.Cache) *PayloadReader {
	return &PayloadReader{cache: cache}
}

// ReadPayload returns the raw file bytes. No schema check is made, the
// advisory api owns the contract.
func (p *PayloadReader) ReadPayload(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, probeerrors.New(exitcodes.ReadError, fmt.Errorf("error resolving payload path %s: %w", path, err))
	}

	payload, err := p.cache.GetOrCreate(absPath, func() ([]byte, error) {
		return os.ReadFile(absPath)
	})
	if err != nil {
		return nil, probeerrors.New(exitcodes.ReadError, fmt.Errorf("can't read payload file %s: %w", path, err))
	}

	return payload, nil
}

func (p *PayloadReader) ListPayloadFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("error listing payload files in %s: %w", dir, err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, filepath.Base(match))
	}

	return files, nil
}
