package components

// HealthComponent 存储实体的生命值信息
// 用于可被攻击的怪物实体
//
// 只有战斗系统会扣减 CurrentHealth，扣减不做下限截断；
// 生命值 <= 0 的实体由 HealthSystem 在之后的清理阶段删除。
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 初始（最大）生命值
}

// Ratio 剩余生命比例，截断到 [0, 1]
func (h *HealthComponent) Ratio() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	r := float64(h.CurrentHealth) / float64(h.MaxHealth)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// IsDead 生命值是否已耗尽
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}
