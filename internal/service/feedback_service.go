package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"novel-recall-be/internal/pkg/logger"
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/pkg/drive"
	"novel-recall-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const feedbackFileName = "book_feedback.txt"

// IFeedbackService appends (query, opinion) records to the shared
// feedback log: local durable buffer first, then a mirror of the
// remote object on Drive.
type IFeedbackService interface {
	Append(ctx context.Context, sessionID, queryText, feedbackText string) (folderLink string, err error)
}

type feedbackService struct {
	remote    drive.RemoteLog
	localPath string
	pubSub    *gochannel.GoChannel
	topicName string
	sysLogger logger.ILogger

	// Serializes the remote read-modify-write. Guards this process
	// only: two separate deployments appending concurrently can still
	// lose a record, which is accepted at the expected write rate.
	mu sync.Mutex
}

func NewFeedbackService(
	remote drive.RemoteLog,
	localDir string,
	pubSub *gochannel.GoChannel,
	topicName string,
	sysLogger logger.ILogger,
) IFeedbackService {
	return &feedbackService{
		remote:    remote,
		localPath: filepath.Join(localDir, feedbackFileName),
		pubSub:    pubSub,
		topicName: topicName,
		sysLogger: sysLogger,
	}
}

func formatRecord(queryText, feedbackText string) string {
	var b strings.Builder
	b.WriteString("Story: " + queryText + "\n")
	b.WriteString("Feedback: " + feedbackText + "\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	return b.String()
}

func (s *feedbackService) Append(ctx context.Context, sessionID, queryText, feedbackText string) (string, error) {
	record := formatRecord(queryText, feedbackText)

	// Local buffer first so the record survives a remote failure.
	if err := s.appendLocal(record); err != nil {
		return "", serverutils.NewLoggerError(err)
	}

	if err := s.mirrorRemote(ctx, record); err != nil {
		s.sysLogger.Error("feedback", "Remote feedback mirror failed, record kept in local buffer", map[string]interface{}{
			"error": err.Error(),
		})
		return "", serverutils.NewLoggerError(err)
	}

	s.publishSaved(sessionID, queryText)

	return s.remote.FolderLink(), nil
}

func (s *feedbackService) appendLocal(record string) error {
	if err := os.MkdirAll(filepath.Dir(s.localPath), 0755); err != nil {
		return fmt.Errorf("failed to create feedback buffer dir: %w", err)
	}
	f, err := os.OpenFile(s.localPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open feedback buffer: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(record); err != nil {
		return fmt.Errorf("failed to append to feedback buffer: %w", err)
	}
	return nil
}

// mirrorRemote is a read-modify-write against the shared Drive object:
// existing file is downloaded, the record appended, and the result
// re-uploaded; a missing file is created from the full local buffer so
// earlier locally-buffered records catch up.
func (s *feedbackService) mirrorRemote(ctx context.Context, record string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileID, err := s.remote.FindFile(ctx, feedbackFileName)
	if err != nil {
		return err
	}

	if fileID == "" {
		buffer, err := os.ReadFile(s.localPath)
		if err != nil {
			return fmt.Errorf("failed to read feedback buffer: %w", err)
		}
		return s.remote.Create(ctx, feedbackFileName, buffer)
	}

	existing, err := s.remote.Download(ctx, fileID)
	if err != nil {
		return err
	}
	return s.remote.Replace(ctx, fileID, append(existing, []byte(record)...))
}

func (s *feedbackService) publishSaved(sessionID, queryText string) {
	if s.pubSub == nil {
		return
	}
	event := events.NewFeedbackSavedEvent(sessionID, queryText)
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		s.sysLogger.Warn("feedback", "Failed to marshal feedback event", map[string]interface{}{"error": err.Error()})
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.sysLogger.Warn("feedback", "Failed to publish feedback event", map[string]interface{}{"error": err.Error()})
	}
}
