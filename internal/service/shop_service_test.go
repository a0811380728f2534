package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newShopService(t *testing.T) (*ShopService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewShopService(repository.NewEquipmentRepository(db), nil, db), db
}

func seedEquipment(t *testing.T, db *gorm.DB, typ model.EquipmentType, number, price int) *model.Equipment {
	t.Helper()
	e := &model.Equipment{Type: typ, ItemNumber: number, Name: "item", Price: price}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	return e
}

func TestBuyEquipment(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", func(u *model.User) { u.Coins = 100 })
	helm := seedEquipment(t, db, model.EquipmentHelm, 2, 30)

	if err := svc.BuyEquipment(user.ID, helm.ID); err != nil {
		t.Fatalf("BuyEquipment: %v", err)
	}

	var updated model.User
	db.First(&updated, user.ID)
	if updated.Coins != 70 {
		t.Fatalf("coins = %d, want 70", updated.Coins)
	}

	var count int64
	db.Model(&model.UserBoughtEquipment{}).
		Where("user_id = ? AND equipment_id = ?", user.ID, helm.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("ledger rows = %d, want 1", count)
	}
}

func TestBuyEquipmentTwice(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", func(u *model.User) { u.Coins = 100 })
	helm := seedEquipment(t, db, model.EquipmentHelm, 1, 30)

	if err := svc.BuyEquipment(user.ID, helm.ID); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if err := svc.BuyEquipment(user.ID, helm.ID); !errors.Is(err, util.ErrEquipmentOwned) {
		t.Fatalf("err = %v, want ErrEquipmentOwned", err)
	}

	// 重复购买不能再扣钱
	var updated model.User
	db.First(&updated, user.ID)
	if updated.Coins != 70 {
		t.Fatalf("coins = %d, want 70 after rejected repurchase", updated.Coins)
	}
}

func TestBuyEquipmentInsufficientCoins(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", func(u *model.User) { u.Coins = 10 })
	helm := seedEquipment(t, db, model.EquipmentHelm, 1, 30)

	if err := svc.BuyEquipment(user.ID, helm.ID); !errors.Is(err, util.ErrInsufficientCoins) {
		t.Fatalf("err = %v, want ErrInsufficientCoins", err)
	}
}

func TestEquipRequiresOwnership(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", nil)
	helm := seedEquipment(t, db, model.EquipmentHelm, 1, 30)

	if _, err := svc.Equip(user.ID, helm.ID); !errors.Is(err, util.ErrEquipmentNotOwned) {
		t.Fatalf("err = %v, want ErrEquipmentNotOwned", err)
	}
}

func TestEquipComposesSpriteID(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", func(u *model.User) { u.Coins = 200 })
	helm := seedEquipment(t, db, model.EquipmentHelm, 2, 30)
	weapon := seedEquipment(t, db, model.EquipmentWeapon, 4, 50)

	for _, id := range []uint{helm.ID, weapon.ID} {
		if err := svc.BuyEquipment(user.ID, id); err != nil {
			t.Fatalf("BuyEquipment(%d): %v", id, err)
		}
	}

	if _, err := svc.Equip(user.ID, helm.ID); err != nil {
		t.Fatalf("Equip helm: %v", err)
	}
	ue, err := svc.Equip(user.ID, weapon.ID)
	if err != nil {
		t.Fatalf("Equip weapon: %v", err)
	}

	if ue.SpriteID != "h2_a1_p1_s1_w4" {
		t.Fatalf("spriteID = %q, want h2_a1_p1_s1_w4", ue.SpriteID)
	}
}

func TestUnequipResetsSlot(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", func(u *model.User) { u.Coins = 100 })
	helm := seedEquipment(t, db, model.EquipmentHelm, 3, 30)

	if err := svc.BuyEquipment(user.ID, helm.ID); err != nil {
		t.Fatalf("BuyEquipment: %v", err)
	}
	if _, err := svc.Equip(user.ID, helm.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	ue, err := svc.Unequip(user.ID, model.EquipmentHelm)
	if err != nil {
		t.Fatalf("Unequip: %v", err)
	}
	if ue.HelmID != nil {
		t.Fatalf("helm slot = %v, want empty", *ue.HelmID)
	}
	if ue.SpriteID != DefaultSpriteID {
		t.Fatalf("spriteID = %q, want %q", ue.SpriteID, DefaultSpriteID)
	}
}

func TestCreateEquipmentRejectsDuplicateNumber(t *testing.T) {
	svc, db := newShopService(t)
	seedEquipment(t, db, model.EquipmentArmor, 1, 40)

	_, err := svc.CreateEquipment(&EquipmentRequest{
		Type:       model.EquipmentArmor,
		ItemNumber: 1,
		Name:       "重甲",
		Price:      60,
	})
	if !errors.Is(err, util.ErrItemNumberTaken) {
		t.Fatalf("err = %v, want ErrItemNumberTaken", err)
	}

	// 同编号换个类型没有冲突
	if _, err := svc.CreateEquipment(&EquipmentRequest{
		Type:       model.EquipmentShoes,
		ItemNumber: 1,
		Name:       "轻靴",
		Price:      20,
	}); err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
}

func TestDeleteEquipmentClearsSlotsAndLedger(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", func(u *model.User) { u.Coins = 200 })
	helm := seedEquipment(t, db, model.EquipmentHelm, 2, 30)
	weapon := seedEquipment(t, db, model.EquipmentWeapon, 4, 50)

	for _, id := range []uint{helm.ID, weapon.ID} {
		if err := svc.BuyEquipment(user.ID, id); err != nil {
			t.Fatalf("BuyEquipment(%d): %v", id, err)
		}
	}
	if _, err := svc.Equip(user.ID, helm.ID); err != nil {
		t.Fatalf("Equip helm: %v", err)
	}

	if err := svc.DeleteEquipment(helm.ID); err != nil {
		t.Fatalf("DeleteEquipment: %v", err)
	}

	var ue model.UserEquipment
	if err := db.Where("user_id = ?", user.ID).First(&ue).Error; err != nil {
		t.Fatalf("load user equipment: %v", err)
	}
	if ue.HelmID != nil {
		t.Fatalf("helm slot = %v, want cleared", *ue.HelmID)
	}
	if ue.SpriteID != DefaultSpriteID {
		t.Fatalf("spriteID = %q, want %q", ue.SpriteID, DefaultSpriteID)
	}

	var count int64
	db.Model(&model.UserBoughtEquipment{}).
		Where("equipment_id = ?", helm.ID).Count(&count)
	if count != 0 {
		t.Fatalf("ledger rows = %d, want 0", count)
	}

	// 删除后其余装备照常可穿
	updated, err := svc.Equip(user.ID, weapon.ID)
	if err != nil {
		t.Fatalf("Equip weapon after deletion: %v", err)
	}
	if updated.SpriteID != "h1_a1_p1_s1_w4" {
		t.Fatalf("spriteID = %q, want h1_a1_p1_s1_w4", updated.SpriteID)
	}
}

func TestUpdateEquipmentRefreshesSprites(t *testing.T) {
	svc, db := newShopService(t)
	user := createTestUser(t, db, "alice", func(u *model.User) { u.Coins = 100 })
	helm := seedEquipment(t, db, model.EquipmentHelm, 2, 30)

	if err := svc.BuyEquipment(user.ID, helm.ID); err != nil {
		t.Fatalf("BuyEquipment: %v", err)
	}
	if _, err := svc.Equip(user.ID, helm.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	if _, err := svc.UpdateEquipment(helm.ID, &EquipmentRequest{
		Type:       model.EquipmentHelm,
		ItemNumber: 7,
		Name:       "鎏金头盔",
		Price:      30,
	}); err != nil {
		t.Fatalf("UpdateEquipment: %v", err)
	}

	var ue model.UserEquipment
	if err := db.Where("user_id = ?", user.ID).First(&ue).Error; err != nil {
		t.Fatalf("load user equipment: %v", err)
	}
	if ue.SpriteID != "h7_a1_p1_s1_w1" {
		t.Fatalf("spriteID = %q, want h7_a1_p1_s1_w1", ue.SpriteID)
	}
}
