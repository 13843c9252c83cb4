package service

import (
	"bytes"
	"context"
	"encoding/json"
	"learning_dashboard_backend/internal/repository"
	"learning_dashboard_backend/internal/util"
	"learning_dashboard_backend/pkg/logger"
	"path"
	"strings"

	"go.uber.org/zap"
)

const snapshotPrefix = "snapshots/"

// SnapshotService 把存储的完整拷贝导出为 JSON 文件，只写不读
type SnapshotService struct {
	Store   repository.Store
	Storage *StorageService
}

func NewSnapshotService(store repository.Store, storage *StorageService) *SnapshotService {
	return &SnapshotService{Store: store, Storage: storage}
}

type SnapshotResult struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s *SnapshotService) Export(ctx context.Context) (*SnapshotResult, error) {
	snap, err := s.Store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}

	name := snapshotPrefix + snap.TakenAt.UTC().Format(util.SnapshotPattern) + ".json"
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), util.MimeJSON)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Snapshot exported",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
		zap.Uint("next_id", snap.NextID))
	return &SnapshotResult{Name: name, URL: url}, nil
}

// List 返回已导出快照，按时间从旧到新
func (s *SnapshotService) List(ctx context.Context) ([]SnapshotResult, error) {
	names, err := s.Storage.List(ctx, snapshotPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]SnapshotResult, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, ".json") || path.Dir(name)+"/" != snapshotPrefix {
			continue
		}
		out = append(out, SnapshotResult{Name: name, URL: s.Storage.GetURL(name)})
	}
	return out, nil
}
