// SPDX-License-Identifier: GPL-2.0-or-later

package cm

// Contents is the content bit set of a brush or a point in space.
type Contents int32

const (
	ContentsSolid       Contents = 1
	ContentsLava        Contents = 8
	ContentsSlime       Contents = 0x10
	ContentsWater       Contents = 0x20
	ContentsFog         Contents = 0x40
	ContentsMissileClip Contents = 0x80
	ContentsPlayerClip  Contents = 0x10000
	ContentsMonsterClip Contents = 0x20000
	ContentsTrigger     Contents = 0x40000000
	ContentsBody        Contents = 0x2000000
	ContentsCorpse      Contents = 0x4000000

	MaskAll         Contents = -1
	MaskSolid       Contents = ContentsSolid
	MaskPlayerSolid Contents = ContentsSolid | ContentsPlayerClip | ContentsBody
	MaskDeadSolid   Contents = ContentsSolid | ContentsPlayerClip
	MaskWater       Contents = ContentsWater | ContentsLava | ContentsSlime
)

// SurfaceFlags describe the material of the surface a trace hit.
type SurfaceFlags int32

const (
	SurfNoDamage     SurfaceFlags = 0x1
	SurfSlick        SurfaceFlags = 0x2
	SurfSky          SurfaceFlags = 0x4
	SurfLadder       SurfaceFlags = 0x8
	SurfNoImpact     SurfaceFlags = 0x10
	SurfSplash       SurfaceFlags = 0x40
	SurfMetal        SurfaceFlags = 0x1000
	SurfNoSteps      SurfaceFlags = 0x2000
	SurfWood         SurfaceFlags = 0x40000
	SurfGrass        SurfaceFlags = 0x80000
	SurfGravel       SurfaceFlags = 0x100000
	SurfGlass        SurfaceFlags = 0x200000
	SurfSnow         SurfaceFlags = 0x400000
	SurfRoof         SurfaceFlags = 0x800000
	SurfRubble       SurfaceFlags = 0x1000000
	SurfCarpet       SurfaceFlags = 0x2000000
	SurfMonsterSlick SurfaceFlags = 0x4000000
)

const (
	MaxClients         = 64
	MaxGEntities       = 1024
	EntityNumNone      = MaxGEntities - 1
	EntityNumWorld     = MaxGEntities - 2
	EntityNumMaxNormal = MaxGEntities - 2
)

var contentNames = map[string]Contents{
	"solid":       ContentsSolid,
	"lava":        ContentsLava,
	"slime":       ContentsSlime,
	"water":       ContentsWater,
	"fog":         ContentsFog,
	"missileclip": ContentsMissileClip,
	"playerclip":  ContentsPlayerClip,
	"monsterclip": ContentsMonsterClip,
	"trigger":     ContentsTrigger,
	"body":        ContentsBody,
	"corpse":      ContentsCorpse,
}

var surfaceNames = map[string]SurfaceFlags{
	"nodamage":     SurfNoDamage,
	"slick":        SurfSlick,
	"sky":          SurfSky,
	"ladder":       SurfLadder,
	"noimpact":     SurfNoImpact,
	"splash":       SurfSplash,
	"metal":        SurfMetal,
	"nosteps":      SurfNoSteps,
	"wood":         SurfWood,
	"grass":        SurfGrass,
	"gravel":       SurfGravel,
	"glass":        SurfGlass,
	"snow":         SurfSnow,
	"roof":         SurfRoof,
	"rubble":       SurfRubble,
	"carpet":       SurfCarpet,
	"monsterslick": SurfMonsterSlick,
}
