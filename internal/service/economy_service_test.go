package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newEconomyService(t *testing.T) (*EconomyService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return NewEconomyService(userRepo, newTestConfig(), db), userRepo
}

func TestConsumeHeartStartsRecoveryClock(t *testing.T) {
	svc, _ := newEconomyService(t)
	user := createTestUser(t, svc.DB, "alice", nil)

	updated, err := svc.ConsumeHeart(user.ID)
	if err != nil {
		t.Fatalf("ConsumeHeart: %v", err)
	}
	if updated.Hearts != 4 {
		t.Fatalf("hearts = %d, want 4", updated.Hearts)
	}
	if updated.LastHeartRecovery == nil {
		t.Fatalf("expected recovery clock to start on first consume from full")
	}
}

func TestConsumeHeartKeepsExistingClock(t *testing.T) {
	svc, _ := newEconomyService(t)
	past := time.Now().Add(-10 * time.Minute)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) {
		u.Hearts = 3
		u.LastHeartRecovery = &past
	})

	updated, err := svc.ConsumeHeart(user.ID)
	if err != nil {
		t.Fatalf("ConsumeHeart: %v", err)
	}
	if updated.Hearts != 2 {
		t.Fatalf("hearts = %d, want 2", updated.Hearts)
	}
	if updated.LastHeartRecovery == nil || !updated.LastHeartRecovery.Equal(past) {
		t.Fatalf("recovery clock must not be touched when already below max")
	}
}

func TestConsumeHeartExhausted(t *testing.T) {
	svc, _ := newEconomyService(t)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) { u.Hearts = 0 })

	if _, err := svc.ConsumeHeart(user.ID); !errors.Is(err, util.ErrNoHearts) {
		t.Fatalf("err = %v, want ErrNoHearts", err)
	}
}

func TestConsumeHeartUnknownUser(t *testing.T) {
	svc, _ := newEconomyService(t)
	if _, err := svc.ConsumeHeart(999); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestBuyHeart(t *testing.T) {
	svc, _ := newEconomyService(t)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) {
		u.Hearts = 2
		u.Coins = 50
	})

	updated, err := svc.BuyHeart(user.ID)
	if err != nil {
		t.Fatalf("BuyHeart: %v", err)
	}
	if updated.Hearts != 3 {
		t.Fatalf("hearts = %d, want 3", updated.Hearts)
	}
	if updated.Coins != 30 {
		t.Fatalf("coins = %d, want 30", updated.Coins)
	}
}

func TestBuyHeartWhenFull(t *testing.T) {
	svc, _ := newEconomyService(t)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) { u.Coins = 100 })

	if _, err := svc.BuyHeart(user.ID); !errors.Is(err, util.ErrHeartsFull) {
		t.Fatalf("err = %v, want ErrHeartsFull", err)
	}
}

func TestBuyHeartInsufficientCoins(t *testing.T) {
	svc, _ := newEconomyService(t)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) {
		u.Hearts = 1
		u.Coins = 10
	})

	if _, err := svc.BuyHeart(user.ID); !errors.Is(err, util.ErrInsufficientCoins) {
		t.Fatalf("err = %v, want ErrInsufficientCoins", err)
	}
}

func TestRegenerateHeartsAdvancesClock(t *testing.T) {
	svc, userRepo := newEconomyService(t)
	// 65 分钟前开始计时，周期 30 分钟：应补 2 颗心，
	// 时钟前移 60 分钟，保留 5 分钟零头
	start := time.Now().Add(-65 * time.Minute)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) {
		u.Hearts = 2
		u.LastHeartRecovery = &start
	})

	if err := svc.RegenerateHearts(); err != nil {
		t.Fatalf("RegenerateHearts: %v", err)
	}

	updated, err := userRepo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if updated.Hearts != 4 {
		t.Fatalf("hearts = %d, want 4", updated.Hearts)
	}
	wantClock := start.Add(60 * time.Minute)
	if updated.LastHeartRecovery == nil {
		t.Fatalf("recovery clock must survive regeneration")
	}
	if diff := updated.LastHeartRecovery.Sub(wantClock); diff < -time.Second || diff > time.Second {
		t.Fatalf("clock advanced to %v, want %v", updated.LastHeartRecovery, wantClock)
	}
}

func TestRegenerateHeartsClampsToMax(t *testing.T) {
	svc, userRepo := newEconomyService(t)
	start := time.Now().Add(-10 * time.Hour)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) {
		u.Hearts = 1
		u.LastHeartRecovery = &start
	})

	if err := svc.RegenerateHearts(); err != nil {
		t.Fatalf("RegenerateHearts: %v", err)
	}

	updated, _ := userRepo.FindByID(user.ID)
	if updated.Hearts != 5 {
		t.Fatalf("hearts = %d, want clamp to 5", updated.Hearts)
	}
}

func TestRegenerateHeartsInitializesMissingClock(t *testing.T) {
	svc, userRepo := newEconomyService(t)
	user := createTestUser(t, svc.DB, "alice", func(u *model.User) { u.Hearts = 3 })

	if err := svc.RegenerateHearts(); err != nil {
		t.Fatalf("RegenerateHearts: %v", err)
	}

	updated, _ := userRepo.FindByID(user.ID)
	if updated.Hearts != 3 {
		t.Fatalf("hearts = %d, want unchanged 3 on clock init", updated.Hearts)
	}
	if updated.LastHeartRecovery == nil {
		t.Fatalf("expected clock to be initialized")
	}
}

func TestLessonCoinReward(t *testing.T) {
	cases := []struct {
		oldStars, newStars, want int
	}{
		{0, 1, 5},
		{0, 2, 10},
		{0, 3, 20},
		{1, 3, 15},
		{2, 3, 10},
		{3, 3, 0},
		{3, 1, 0},  // 成绩变差不扣钱
		{0, 99, 20}, // 越界收敛到表边界
	}
	for _, c := range cases {
		if got := LessonCoinReward(c.oldStars, c.newStars); got != c.want {
			t.Fatalf("LessonCoinReward(%d, %d) = %d, want %d", c.oldStars, c.newStars, got, c.want)
		}
	}
}

func TestLessonPointReward(t *testing.T) {
	if got := LessonPointReward(100, 150); got != 50 {
		t.Fatalf("LessonPointReward(100, 150) = %d, want 50", got)
	}
	if got := LessonPointReward(100, 80); got != 0 {
		t.Fatalf("LessonPointReward(100, 80) = %d, want 0", got)
	}
	if got := LessonPointReward(0, 0); got != 0 {
		t.Fatalf("LessonPointReward(0, 0) = %d, want 0", got)
	}
}

func TestRegenerateHeartsIsolatesFailingUser(t *testing.T) {
	svc, _ := newEconomyService(t)
	past := time.Now().Add(-65 * time.Minute)
	failing := createTestUser(t, svc.DB, "alice", func(u *model.User) {
		u.Hearts = 1
		u.LastHeartRecovery = &past
	})
	healthy := createTestUser(t, svc.DB, "bob", func(u *model.User) {
		u.Hearts = 1
		u.LastHeartRecovery = &past
	})

	// 给单个用户的写入注入存储错误
	failID := failing.ID
	err := svc.DB.Callback().Update().Before("gorm:update").
		Register("fail_single_user_update", func(tx *gorm.DB) {
			if u, ok := tx.Statement.Dest.(*model.User); ok && u.ID == failID {
				tx.AddError(errors.New("disk full"))
			}
		})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if err := svc.RegenerateHearts(); err != nil {
		t.Fatalf("RegenerateHearts: %v", err)
	}

	var updated model.User
	svc.DB.First(&updated, healthy.ID)
	if updated.Hearts != 3 {
		t.Fatalf("healthy user hearts = %d, want 3", updated.Hearts)
	}

	var failedUser model.User
	if err := svc.DB.First(&failedUser, failID).Error; err != nil {
		t.Fatalf("First(failing): %v", err)
	}
	if failedUser.Hearts != 1 {
		t.Fatalf("failing user hearts = %d, want 1 (unchanged)", failedUser.Hearts)
	}
}
