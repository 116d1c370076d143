package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"marketScope/internal/chain"
	"marketScope/internal/model"
)

// JsonlStorage appends collateral intents to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutIntent appends one intent as a JSON line.
func (s *JsonlStorage) PutIntent(intent model.CollateralIntent) error {
	line, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("marshal intent: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.Write(line); err != nil {
		return fmt.Errorf("write intent: %w", err)
	}
	if err := writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// FileSource reads pools from a JSONL file, one pool per line. Pools keep
// their file order.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadPools returns the pools of chainID. Lines without a chain_id belong to
// every chain.
func (s *FileSource) LoadPools(ctx context.Context, chainID chain.ChainID) ([]model.Pool, error) {
	pools, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Pool, 0, len(pools))
	for _, pool := range pools {
		if pool.ChainID != 0 && chain.ChainID(pool.ChainID) != chainID {
			continue
		}
		out = append(out, pool)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrPoolsNotFound, chainID)
	}
	return out, nil
}

// ReadAll decodes every pool in the file.
func (s *FileSource) ReadAll(ctx context.Context) ([]model.Pool, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open pools: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var pools []model.Pool
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var pool model.Pool
		if err := json.Unmarshal(line, &pool); err != nil {
			return nil, fmt.Errorf("decode pool line %d: %w", lineNo, err)
		}
		pools = append(pools, pool)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan pools: %w", err)
	}
	return pools, nil
}
