package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"testing"

	"gorm.io/gorm"
)

func newRankingService(t *testing.T) (*RankingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewRankingService(repository.NewUserRepository(db), nil), db
}

func TestRecalculateRanks(t *testing.T) {
	svc, db := newRankingService(t)
	a := createTestUser(t, db, "alice", func(u *model.User) { u.Points = 50 })
	b := createTestUser(t, db, "bob", func(u *model.User) { u.Points = 50 })
	c := createTestUser(t, db, "carol", func(u *model.User) { u.Points = 30 })
	createTestUser(t, db, "root", func(u *model.User) {
		u.Role = model.RoleAdmin
		u.Points = 999
	})

	if err := svc.RecalculateRanks(); err != nil {
		t.Fatalf("RecalculateRanks: %v", err)
	}

	// 并列积分按 id 升序决出确定性的名次，管理员不参与
	wantRanks := map[uint]int{a.ID: 1, b.ID: 2, c.ID: 3}
	for id, want := range wantRanks {
		var u model.User
		db.First(&u, id)
		if u.Rank != want {
			t.Fatalf("user %d rank = %d, want %d", id, u.Rank, want)
		}
	}

	var admin model.User
	db.Where("login = ?", "root").First(&admin)
	if admin.Rank != 0 {
		t.Fatalf("admin rank = %d, want untouched 0", admin.Rank)
	}
}

func TestRecalculateRanksIsStableOnRerun(t *testing.T) {
	svc, db := newRankingService(t)
	createTestUser(t, db, "alice", func(u *model.User) { u.Points = 10 })
	createTestUser(t, db, "bob", func(u *model.User) { u.Points = 20 })

	if err := svc.RecalculateRanks(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := svc.RecalculateRanks(); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var bob model.User
	db.Where("login = ?", "bob").First(&bob)
	if bob.Rank != 1 {
		t.Fatalf("bob rank = %d, want 1", bob.Rank)
	}
}

func TestGetGlobalRanking(t *testing.T) {
	svc, db := newRankingService(t)
	createTestUser(t, db, "alice", func(u *model.User) { u.Points = 5 })
	createTestUser(t, db, "bob", func(u *model.User) { u.Points = 80 })

	entries, err := svc.GetGlobalRanking()
	if err != nil {
		t.Fatalf("GetGlobalRanking: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Login != "bob" || entries[0].Position != 1 {
		t.Fatalf("top entry = %+v, want bob at position 1", entries[0])
	}
	if entries[1].Login != "alice" || entries[1].Position != 2 {
		t.Fatalf("second entry = %+v, want alice at position 2", entries[1])
	}
}

func TestGetMyRankingShowsBothRanks(t *testing.T) {
	svc, db := newRankingService(t)
	alice := createTestUser(t, db, "alice", func(u *model.User) { u.Points = 10 })
	createTestUser(t, db, "bob", func(u *model.User) { u.Points = 20 })

	if err := svc.RecalculateRanks(); err != nil {
		t.Fatalf("RecalculateRanks: %v", err)
	}

	// 任务运行之后 alice 又涨了分，实时名次应领先持久化名次
	db.Model(&model.User{}).Where("id = ?", alice.ID).Update("points", 100)

	ranking, err := svc.GetMyRanking(alice.ID)
	if err != nil {
		t.Fatalf("GetMyRanking: %v", err)
	}
	if ranking.PersistedRank != 2 {
		t.Fatalf("persistedRank = %d, want 2", ranking.PersistedRank)
	}
	if ranking.CurrentRank != 1 {
		t.Fatalf("currentRank = %d, want 1", ranking.CurrentRank)
	}
	if ranking.RankedUserSize != 2 {
		t.Fatalf("rankedUserSize = %d, want 2", ranking.RankedUserSize)
	}
}
