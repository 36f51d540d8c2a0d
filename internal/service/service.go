package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"wbs/classifier/internal/domain"
	"wbs/classifier/internal/domain/task"
	"wbs/classifier/internal/export"
	"wbs/classifier/internal/pipeline"
	"wbs/classifier/internal/queue"
	"wbs/classifier/internal/repository"
	"wbs/classifier/internal/ruleset"
	"wbs/classifier/internal/state"
)

const (
	classifyStream = queue.StreamPrefix + "ClassifyGroupTask"
	retryStream    = queue.StreamPrefix + "GroupRetryTask"
)

type Service struct {
	repository   repository.WBSRepository
	queue        queue.Queue
	stateManager state.StateManager
	exporter     *export.Exporter
	dictionary   domain.Dictionary
	rules        ruleset.Ruleset
	options      pipeline.Options
	groupName    string
	minIdleTime  time.Duration
}

func NewService(
	repository repository.WBSRepository,
	queue queue.Queue,
	stateManager state.StateManager,
	exporter *export.Exporter,
	dictionary domain.Dictionary,
	rules ruleset.Ruleset,
	options pipeline.Options,
	groupName string,
	minIdleTime int,
) *Service {
	return &Service{
		repository:   repository,
		queue:        queue,
		stateManager: stateManager,
		exporter:     exporter,
		dictionary:   dictionary,
		rules:        rules,
		options:      options,
		groupName:    groupName,
		minIdleTime:  time.Duration(minIdleTime) * time.Second,
	}
}

// EnqueueAll lists every WBS group and queues a classification task for the
// ones not yet completed.
func (s *Service) EnqueueAll(ctx context.Context) error {
	groups, err := s.repository.ListGroups(ctx)
	if err != nil {
		log.Errorf("❌ Failed to list WBS groups: %v", err)
		return err
	}

	log.Infof("🔄 Found %d WBS groups (ruleset %s)", len(groups), s.rules.Version)

	queued := 0
	skipped := 0
	for _, groupID := range groups {
		completed, err := s.stateManager.IsGroupCompleted(ctx, groupID)
		if err != nil {
			return err
		}
		if completed {
			skipped++
			continue
		}

		if _, err := s.queue.AddTask(ctx, &task.ClassifyGroupTask{GroupID: groupID}); err != nil {
			log.Errorf("❌ Failed to queue group %s: %v", groupID, err)
			return err
		}
		queued++
	}

	log.Infof("✅ Queued %d groups, skipped %d already classified", queued, skipped)
	return nil
}

// RunWorkers consumes classification and retry tasks until the context ends.
func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	s.runWorkersForStream(ctx, &wg, numWorkers, classifyStream, "main")
	s.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), retryStream, "retry")

	wg.Wait()
	return nil
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s-%d", workerType, time.Now().UnixNano())
				claimedMessages, err := s.queue.AutoClaim(ctx, s.groupName, consumer, streamName, s.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
					for _, msg := range claimedMessages {
						if err := s.processMessage(ctx, &msg); err != nil {
							log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()

	// Regular workers for this stream
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := s.queue.GetTask(ctx, s.groupName, consumer, streamName)
					if err != nil {
						log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
						continue
					}

					if msg != nil {
						if err := s.processMessage(ctx, msg); err != nil {
							log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}(i + 1)
	}
}

func (s *Service) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	var streamName string
	switch taskType {
	case "ClassifyGroupTask":
		streamName = classifyStream
		groupTask, err := task.UnmarshalTask[*task.ClassifyGroupTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal classify task data: %w", err)
		}

		if err := s.classifyGroup(ctx, groupTask.GroupID); err != nil {
			retryTask := &task.GroupRetryTask{
				GroupID:    groupTask.GroupID,
				RetryCount: 0,
				Error:      err.Error(),
			}

			if _, addErr := s.queue.AddTask(ctx, retryTask); addErr != nil {
				log.Errorf("❌ Failed to add retry task for group %s: %v", groupTask.GroupID, addErr)
			} else {
				log.Warnf("🔄 Added group %s to retry queue due to error: %v", groupTask.GroupID, err)
			}
		}

	case "GroupRetryTask":
		streamName = retryStream
		retryTask, err := task.UnmarshalTask[*task.GroupRetryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal retry task data: %w", err)
		}

		if err := s.retryGroup(ctx, retryTask); err != nil {
			return fmt.Errorf("failed to retry group: %w", err)
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	if err := s.queue.AckTask(ctx, streamName, s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}

// classifyGroup runs the full transform for one WBS group: load the
// hierarchy rows, classify, export CSV, persist and mark completion.
func (s *Service) classifyGroup(ctx context.Context, groupID string) error {
	nodes, err := s.repository.LoadNodes(ctx, groupID)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		log.Warnf("⚠️ Group %s has no nodes, marking completed", groupID)
		return s.stateManager.MarkGroupCompleted(ctx, groupID)
	}

	result, err := pipeline.Classify(nodes, s.dictionary, s.rules, s.options)
	if err != nil {
		return fmt.Errorf("classification failed for group %s: %w", groupID, err)
	}

	level1Path, err := s.exporter.WriteLevel1(groupID, result.Level1)
	if err != nil {
		return fmt.Errorf("level-1 export failed for group %s: %w", groupID, err)
	}
	level2Path, err := s.exporter.WriteLevel2(groupID, result.Level2)
	if err != nil {
		return fmt.Errorf("level-2 export failed for group %s: %w", groupID, err)
	}

	if err := s.repository.SaveLevel1(ctx, result.Level1); err != nil {
		return err
	}
	if err := s.repository.SaveLevel2(ctx, result.Level2); err != nil {
		return err
	}

	if err := s.stateManager.MarkGroupCompleted(ctx, groupID); err != nil {
		return err
	}

	log.Infof("✅ Classified group %s: %d nodes, %d level-2 rows, exported %s and %s",
		groupID, len(result.Level1), len(result.Level2), level1Path, level2Path)
	return nil
}

func (s *Service) retryGroup(ctx context.Context, retryTask *task.GroupRetryTask) error {
	retryTask.RetryCount++

	log.Infof("🔄 Retrying group %s (attempt %d)", retryTask.GroupID, retryTask.RetryCount)

	if err := s.classifyGroup(ctx, retryTask.GroupID); err != nil {
		// Re-queue with incremented count - retry indefinitely
		newRetryTask := &task.GroupRetryTask{
			GroupID:    retryTask.GroupID,
			RetryCount: retryTask.RetryCount,
			Error:      err.Error(),
		}

		if _, addErr := s.queue.AddTask(ctx, newRetryTask); addErr != nil {
			log.Errorf("❌ Failed to re-add retry task for group %s: %v", retryTask.GroupID, addErr)
			return addErr
		}

		log.Warnf("🔄 Group %s failed again, will retry (attempt %d): %v",
			retryTask.GroupID, retryTask.RetryCount, err)
		return nil
	}

	log.Infof("✅ Successfully recovered group %s after %d attempts", retryTask.GroupID, retryTask.RetryCount)
	return nil
}
