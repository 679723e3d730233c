package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"stackit_backend/internal/model"
	"stackit_backend/internal/repository"
	"stackit_backend/pkg/logger"
	"stackit_backend/pkg/monitoring"
	"stackit_backend/pkg/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	NotificationKindAnswer  = "answer"
	NotificationKindMention = "mention"
)

const (
	// 与 notifications.message 列宽一致，按字符计
	maxNotificationMessage = 255
	unreadGenTTL           = 24 * time.Hour
)

var errStaleUnread = errors.New("unread count changed during count")

// @ 后紧跟的 Unicode 单词字符
var mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)

// Notifier 回答发布后的通知副作用
type Notifier interface {
	AnswerPosted(ctx context.Context, answer *model.Answer, question *model.Question, answerer *model.User) error
}

type NotificationService struct {
	Repo      *repository.NotificationRepository
	UserRepo  *repository.UserRepository
	Redis     *redis.Client
	UnreadTTL time.Duration
}

func NewNotificationService(
	repo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	unreadTTL time.Duration,
) *NotificationService {
	return &NotificationService{
		Repo:      repo,
		UserRepo:  userRepo,
		Redis:     rdb,
		UnreadTTL: unreadTTL,
	}
}

// ExtractMentions 返回去重后的用户名，保持首次出现顺序
func ExtractMentions(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	handles := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		handles = append(handles, m[1])
	}
	return handles
}

func questionLink(questionID uint) string {
	return fmt.Sprintf("/questions/%d/", questionID)
}

// AnswerPosted 通知问题作者（回答者本人除外）以及正文中 @ 到的用户。
// 每条通知独立写入，任何一条失败都不影响其他通知，失败汇总后返回。
func (s *NotificationService) AnswerPosted(ctx context.Context, answer *model.Answer, question *model.Question, answerer *model.User) error {
	ctx, span := tracing.Tracer.Start(ctx, "notification.answer_posted")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("answer.id", int64(answer.ID)),
		attribute.Int64("question.id", int64(question.ID)),
	)

	var errs []error
	link := questionLink(question.ID)

	if answerer.ID != question.AuthorID {
		msg := fmt.Sprintf("%s answered your question: %s", answerer.Username, question.Title)
		if err := s.notify(ctx, question.AuthorID, msg, link, NotificationKindAnswer); err != nil {
			errs = append(errs, err)
		}
	}

	handles := ExtractMentions(answer.Body)
	if len(handles) > 0 {
		users, err := s.UserRepo.FindByUsernames(handles, answerer.ID)
		if err != nil {
			monitoring.NotificationFailures.WithLabelValues(NotificationKindMention).Inc()
			logger.Log.Warn("Failed to resolve mentions",
				zap.Uint("answer_id", answer.ID),
				zap.Strings("handles", handles),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("resolve mentions: %w", err))
		}
		msg := fmt.Sprintf("%s mentioned you in an answer", answerer.Username)
		for _, u := range users {
			if err := s.notify(ctx, u.ID, msg, link, NotificationKindMention); err != nil {
				errs = append(errs, err)
			}
		}
		span.SetAttributes(attribute.Int("mentions.resolved", len(users)))
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "notification write failed")
	}
	return err
}

func (s *NotificationService) notify(ctx context.Context, userID uint, message, link, kind string) error {
	n := &model.Notification{
		UserID:  userID,
		Message: truncateRunes(message, maxNotificationMessage),
		Link:    link,
	}
	if err := s.Repo.Create(n); err != nil {
		monitoring.NotificationFailures.WithLabelValues(kind).Inc()
		logger.Log.Warn("Failed to create notification",
			zap.String("kind", kind),
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("notify user %d: %w", userID, err)
	}
	monitoring.NotificationsCreated.WithLabelValues(kind).Inc()
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationService) List(userID uint) ([]NotificationResponse, error) {
	notifications, err := s.Repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	resp := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, NewNotificationResponse(&notifications[i]))
	}
	return resp, nil
}

func (s *NotificationService) Get(id, userID uint) (*NotificationResponse, error) {
	n, err := s.Repo.FindByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}
	resp := NewNotificationResponse(n)
	return &resp, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.Repo.MarkRead(id, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// UnreadCount 优先读缓存，缓存不可用时直接查库。
// 回写缓存前比对版本号，计数期间有新通知或已读时放弃回写。
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	key := unreadKey(userID)
	var gen string
	cacheable := false
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, key).Result()
		switch {
		case err == nil:
			if n, perr := strconv.ParseInt(val, 10, 64); perr == nil {
				return n, nil
			}
		case !errors.Is(err, redis.Nil):
			logger.Log.Warn("Unread count cache read failed", zap.String("key", key), zap.Error(err))
		}

		gen, err = s.unreadGeneration(ctx, s.Redis, userID)
		cacheable = err == nil
	}

	count, err := s.Repo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	if cacheable {
		s.storeUnread(ctx, userID, gen, count)
	}
	return count, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *NotificationService) unreadGeneration(ctx context.Context, c stringGetter, userID uint) (string, error) {
	gen, err := c.Get(ctx, unreadGenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return gen, err
}

// storeUnread 在 WATCH 事务里回写，版本号变化则丢弃这次计数
func (s *NotificationService) storeUnread(ctx context.Context, userID uint, gen string, count int64) {
	key := unreadKey(userID)
	err := s.Redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := s.unreadGeneration(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleUnread
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, count, s.UnreadTTL)
			return nil
		})
		return err
	}, unreadGenKey(userID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleUnread), errors.Is(err, redis.TxFailedErr):
		logger.Log.Debug("Unread count changed while counting, cache not written", zap.Uint("user_id", userID))
	default:
		logger.Log.Warn("Unread count cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID uint) {
	if s.Redis == nil {
		return
	}
	_, err := s.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, unreadGenKey(userID))
		pipe.Expire(ctx, unreadGenKey(userID), unreadGenTTL)
		pipe.Del(ctx, unreadKey(userID))
		return nil
	})
	if err != nil {
		logger.Log.Warn("Unread count cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func unreadGenKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d:gen", userID)
}

// truncateRunes 按字符截断，不拆开多字节字符
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
