package service

import (
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"code_quest_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	globalRankingCacheKey = "ranking:global"
	globalRankingCacheTTL = 10 * time.Second
)

// RankingService 排名有两条路径：定时任务写入 users.rank 的缓存排名，
// 和 GetGlobalRanking 每次现算的实时排名。两者在任务周期内可能不一致，
// 实时排名是榜单视图的唯一事实来源
type RankingService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewRankingService(userRepo *repository.UserRepository, rdb *redis.Client) *RankingService {
	return &RankingService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
}

// RankEntry 榜单条目，密集排名：并列积分也各占一个名次
type RankEntry struct {
	Position int    `json:"position"`
	UserID   uint   `json:"userId"`
	Login    string `json:"login"`
	Points   int    `json:"points"`
}

// RecalculateRanks 全量重排并持久化，只写回名次发生变化的行。
// 仅普通用户参与，按积分降序、id 升序
func (s *RankingService) RecalculateRanks() error {
	users, err := s.UserRepo.FindRankedUsers()
	if err != nil {
		return err
	}

	updated := 0
	for i := range users {
		rank := i + 1
		if users[i].Rank == rank {
			continue
		}
		if err := s.UserRepo.UpdateRank(users[i].ID, rank); err != nil {
			return err
		}
		updated++
	}

	if updated > 0 {
		logger.Log.Info("ranking recalculated",
			zap.Int("users", len(users)),
			zap.Int("updated", updated))
	}
	return nil
}

// GetGlobalRanking 实时榜单，不读也不写持久化的 rank 字段。
// 经过一层短 TTL 的 Redis 缓存，过期窗口内的陈旧可接受
func (s *RankingService) GetGlobalRanking() ([]RankEntry, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, globalRankingCacheKey).Result(); err == nil {
			var entries []RankEntry
			if err := json.Unmarshal([]byte(val), &entries); err == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindRankedUsers()
	if err != nil {
		return nil, err
	}

	entries := make([]RankEntry, len(users))
	for i, u := range users {
		entries[i] = RankEntry{
			Position: i + 1,
			UserID:   u.ID,
			Login:    u.Login,
			Points:   u.Points,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, globalRankingCacheKey, data, globalRankingCacheTTL)
		}
	}

	return entries, nil
}

// MyRanking 给用户自己看的名次：持久化名次与实时名次并列返回，
// 两者之间的差距就是调度周期内的陈旧窗口
type MyRanking struct {
	UserID         uint `json:"userId"`
	Points         int  `json:"points"`
	PersistedRank  int  `json:"persistedRank"`  // 定时任务最近一次写入的名次，0 表示未上榜
	CurrentRank    int  `json:"currentRank"`    // 实时计算的名次，0 表示不参与排名
	RankedUserSize int  `json:"rankedUserSize"` // 参与排名的用户数
}

func (s *RankingService) GetMyRanking(userID uint) (*MyRanking, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	users, err := s.UserRepo.FindRankedUsers()
	if err != nil {
		return nil, err
	}

	ranking := &MyRanking{
		UserID:         user.ID,
		Points:         user.Points,
		PersistedRank:  user.Rank,
		RankedUserSize: len(users),
	}
	for i := range users {
		if users[i].ID == userID {
			ranking.CurrentRank = i + 1
			break
		}
	}
	return ranking, nil
}
