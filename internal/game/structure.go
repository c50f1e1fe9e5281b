package game

import "fmt"

// StructureKind identifies a structure variant.
type StructureKind uint8

const (
	KindKing             StructureKind = iota // player's life; destroyed king eliminates its owner
	KindWall                                  // loses one life per hit
	KindRegeneratingWall                      // wall that regains lives every level
	KindBaseWall                              // neutral, infinite lives
	KindBank                                  // one life, pays income every level
	structureKindCount                        // sentinel
)

var structureKindNames = [structureKindCount]string{
	KindKing:             "king",
	KindWall:             "wall",
	KindRegeneratingWall: "regen_wall",
	KindBaseWall:         "base_wall",
	KindBank:             "bank",
}

func (k StructureKind) String() string {
	if k < structureKindCount {
		return structureKindNames[k]
	}
	return "unknown"
}

// MarshalText lets templates name their kind in JSON.
func (k StructureKind) MarshalText() ([]byte, error) {
	if k >= structureKindCount {
		return nil, fmt.Errorf("unknown structure kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText parses the names produced by String.
func (k *StructureKind) UnmarshalText(b []byte) error {
	for i, name := range structureKindNames {
		if name == string(b) {
			*k = StructureKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown structure kind %q", string(b))
}

// InfiniteLives is the lives value of structures that can never be destroyed.
const InfiniteLives = -1

// TurnContext is what a structure's per-level action may touch.
type TurnContext interface {
	// Credit adds amount to the balance of the player owning c.
	Credit(c Color, amount int)
}

// Structure is a grid-resident entity. The grid exclusively owns it; a
// structure is destroyed only by being removed from its cell.
type Structure interface {
	Kind() StructureKind
	Color() Color
	Lives() int
	// Protectable structures survive a destroying hit while all existing
	// orthogonal neighbours are occupied.
	Protectable() bool
	InfiniteLives() bool
	// OnHit applies damage and reports whether lives reached zero.
	OnHit(damage int) bool
	// OnTurn runs the end-of-level action (income, regeneration).
	OnTurn(ctx TurnContext)
}

type structureBase struct {
	kind        StructureKind
	color       Color
	lives       int
	protectable bool
	infinite    bool
}

func (b *structureBase) Kind() StructureKind { return b.kind }
func (b *structureBase) Color() Color        { return b.color }
func (b *structureBase) Lives() int          { return b.lives }
func (b *structureBase) Protectable() bool   { return b.protectable }
func (b *structureBase) InfiniteLives() bool { return b.infinite }
func (b *structureBase) OnTurn(TurnContext)  {}

func (b *structureBase) OnHit(damage int) bool {
	if b.infinite {
		return false
	}
	b.lives -= damage
	return b.lives <= 0
}

// King grants income to its owner every level. Losing it eliminates the owner.
type King struct {
	structureBase
	income int
}

// NewKing creates a king for owner c.
func NewKing(c Color, lives, income int) *King {
	return &King{
		structureBase: structureBase{kind: KindKing, color: c, lives: lives, protectable: true},
		income:        income,
	}
}

// Income is the money credited to the owner at the end of each level.
func (k *King) Income() int { return k.income }

func (k *King) OnTurn(ctx TurnContext) { ctx.Credit(k.color, k.income) }

// Wall is a plain destructible wall. Walls ignore the protection rule.
type Wall struct {
	structureBase
}

// NewWall creates a wall with the given lives.
func NewWall(c Color, lives int) *Wall {
	return &Wall{structureBase{kind: KindWall, color: c, lives: lives}}
}

// RegeneratingWall is a wall that regains Regen lives each level, uncapped.
type RegeneratingWall struct {
	structureBase
	regen int
}

// NewRegeneratingWall creates a regenerating wall.
func NewRegeneratingWall(c Color, lives, regen int) *RegeneratingWall {
	return &RegeneratingWall{
		structureBase: structureBase{kind: KindRegeneratingWall, color: c, lives: lives},
		regen:         regen,
	}
}

// Regen is the number of lives restored per level.
func (w *RegeneratingWall) Regen() int { return w.regen }

func (w *RegeneratingWall) OnTurn(TurnContext) { w.lives += w.regen }

// BaseWall is neutral terrain: it absorbs every hit and is never destroyed.
type BaseWall struct {
	structureBase
}

// NewBaseWall creates a neutral base wall.
func NewBaseWall() *BaseWall {
	return &BaseWall{structureBase{kind: KindBaseWall, color: ColorNone, lives: InfiniteLives, infinite: true}}
}

// Bank has exactly one life and pays its owner every level.
type Bank struct {
	structureBase
	income int
}

// NewBank creates a bank paying income per level.
func NewBank(c Color, income int) *Bank {
	return &Bank{
		structureBase: structureBase{kind: KindBank, color: c, lives: 1, protectable: true},
		income:        income,
	}
}

// Income is the money credited to the owner at the end of each level.
func (b *Bank) Income() int { return b.income }

func (b *Bank) OnTurn(ctx TurnContext) { ctx.Credit(b.color, b.income) }

// NewFromTemplate builds the structure a template describes for owner c.
func NewFromTemplate(t Template, c Color) (Structure, error) {
	switch t.Kind {
	case KindWall:
		return NewWall(c, t.Lives), nil
	case KindRegeneratingWall:
		return NewRegeneratingWall(c, t.Lives, t.Regen), nil
	case KindBank:
		return NewBank(c, t.Income), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, t.Kind)
	}
}
