package service

import (
	"code_quest_backend/internal/config"
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"code_quest_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// coinRewardTable 星级对应的累计金币：拿到 n 星意味着该关卡累计获得
// coinRewardTable[n] 金币，结算时只补发与之前星级的差额
var coinRewardTable = [4]int{0, 5, 10, 20}

// EconomyService 负责红心消耗/恢复/购买与金币、积分结算
type EconomyService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
	DB       *gorm.DB
}

func NewEconomyService(userRepo *repository.UserRepository, cfg *config.Config, db *gorm.DB) *EconomyService {
	return &EconomyService{
		UserRepo: userRepo,
		Cfg:      cfg,
		DB:       db,
	}
}

// ConsumeHeart 扣除一颗红心。从满心开始消耗时才启动恢复计时
func (s *EconomyService) ConsumeHeart(userID uint) (*model.User, error) {
	var user model.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrUserNotFound
			}
			return err
		}

		if user.Hearts <= 0 {
			return util.ErrNoHearts
		}

		if user.Hearts == s.Cfg.Game.MaxHearts {
			now := time.Now()
			user.LastHeartRecovery = &now
		}
		user.Hearts--

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// BuyHeart 花费金币购买一颗红心，满心或余额不足时失败
func (s *EconomyService) BuyHeart(userID uint) (*model.User, error) {
	var user model.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrUserNotFound
			}
			return err
		}

		if user.Hearts >= s.Cfg.Game.MaxHearts {
			return util.ErrHeartsFull
		}
		if user.Coins < s.Cfg.Game.HeartPrice {
			return util.ErrInsufficientCoins
		}

		user.Coins -= s.Cfg.Game.HeartPrice
		user.Hearts++

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RegenerateHearts 红心恢复批处理，由后台定时任务触发。
// 单个用户出错只记录日志，不影响本轮其余用户
func (s *EconomyService) RegenerateHearts() error {
	users, err := s.UserRepo.FindBelowMaxHearts(s.Cfg.Game.MaxHearts)
	if err != nil {
		return err
	}

	now := time.Now()
	for i := range users {
		if err := s.regenerateUser(&users[i], now); err != nil {
			logger.Log.Error("heart regeneration failed",
				zap.Uint("userID", users[i].ID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *EconomyService) regenerateUser(user *model.User, now time.Time) error {
	// 计时起点为空时只初始化时钟，本轮不加心
	if user.LastHeartRecovery == nil {
		user.LastHeartRecovery = &now
		return s.UserRepo.Update(user)
	}

	minutesPerHeart := s.Cfg.Game.MinutesPerHeart
	elapsedMinutes := int(now.Sub(*user.LastHeartRecovery).Minutes())
	heartsToAdd := elapsedMinutes / minutesPerHeart
	if heartsToAdd <= 0 {
		return nil
	}

	user.Hearts += heartsToAdd
	if user.Hearts > s.Cfg.Game.MaxHearts {
		user.Hearts = s.Cfg.Game.MaxHearts
	}

	// 计时起点向前推 heartsToAdd 个恢复周期而不是重置为 now，
	// 保留不足一个周期的零头，避免系统性丢失恢复进度
	advanced := user.LastHeartRecovery.Add(time.Duration(heartsToAdd*minutesPerHeart) * time.Minute)
	user.LastHeartRecovery = &advanced

	return s.UserRepo.Update(user)
}

// LessonCoinReward 星级提升对应的金币差额，星级索引越界时收敛到表边界
func LessonCoinReward(oldStars, newStars int) int {
	delta := coinRewardTable[clampStars(newStars)] - coinRewardTable[clampStars(oldStars)]
	if delta < 0 {
		return 0
	}
	return delta
}

// LessonPointReward 只结算历史最好成绩的正向差额
func LessonPointReward(oldBest, newBest int) int {
	if newBest <= oldBest {
		return 0
	}
	return newBest - oldBest
}

// ApplyRewards 在进度合并的同一事务里给用户入账
func (s *EconomyService) ApplyRewards(tx *gorm.DB, userID uint, coins, points int) error {
	if coins == 0 && points == 0 {
		return nil
	}
	updates := map[string]interface{}{}
	if coins != 0 {
		updates["coins"] = gorm.Expr("coins + ?", coins)
	}
	if points != 0 {
		updates["points"] = gorm.Expr("points + ?", points)
	}
	return tx.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

func clampStars(stars int) int {
	if stars < 0 {
		return 0
	}
	if stars > 3 {
		return 3
	}
	return stars
}
