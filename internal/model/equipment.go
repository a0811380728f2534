package model

type EquipmentType string

const (
	EquipmentHelm   EquipmentType = "HELM"
	EquipmentArmor  EquipmentType = "ARMOR"
	EquipmentPants  EquipmentType = "PANTS"
	EquipmentShoes  EquipmentType = "SHOES"
	EquipmentWeapon EquipmentType = "WEAPON"
)

// AllEquipmentTypes 五个装备槽位
var AllEquipmentTypes = []EquipmentType{
	EquipmentHelm,
	EquipmentArmor,
	EquipmentPants,
	EquipmentShoes,
	EquipmentWeapon,
}

// Equipment 商店目录条目，itemNumber 在同类型内唯一（用于拼接贴图文件名）
// swagger:model Equipment
type Equipment struct {
	BaseModel
	Type       EquipmentType `gorm:"size:20;not null;index:idx_type_number,unique" json:"type"`
	ItemNumber int           `gorm:"not null;index:idx_type_number,unique" json:"itemNumber"`
	Name       string        `gorm:"size:100;not null" json:"name"`
	Price      int           `gorm:"default:0" json:"price"`
}

func (Equipment) TableName() string {
	return "equipments"
}

// UserBoughtEquipment 购买记录，每个 (user, equipment) 仅一行
// swagger:model UserBoughtEquipment
type UserBoughtEquipment struct {
	BaseModel
	UserID      uint `gorm:"index:idx_user_equipment,unique;not null" json:"userId"`
	EquipmentID uint `gorm:"index:idx_user_equipment,unique;not null" json:"equipmentId"`
}

func (UserBoughtEquipment) TableName() string {
	return "user_bought_equipments"
}

// UserEquipment 每个用户一行，五个槽位引用已购装备
// swagger:model UserEquipment
type UserEquipment struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex;not null" json:"userId"`
	HelmID   *uint  `json:"helmId"`
	ArmorID  *uint  `json:"armorId"`
	PantsID  *uint  `json:"pantsId"`
	ShoesID  *uint  `json:"shoesId"`
	WeaponID *uint  `json:"weaponId"`
	SpriteID string `gorm:"size:100" json:"spriteId"` // 由五个槽位的 itemNumber 派生
}

func (UserEquipment) TableName() string {
	return "user_equipments"
}
