package game

// WeaponID indexes the weapon definition table.
type WeaponID uint8

const (
	WeaponNone WeaponID = iota
	WeaponMachinegun
	WeaponRocketLauncher
	WeaponRailgun
	WeaponLightningGun
	WeaponPlasmaGun

	WeaponCount
)

// FireKind selects how a weapon delivers damage when fired.
type FireKind uint8

const (
	FireNone FireKind = iota
	// FireHitscan traces a ray from the eye and damages the first player hit.
	FireHitscan
	// FireBeam is mechanically identical to hitscan; it only differs in
	// fire interval and presentation.
	FireBeam
	// FireProjectile spawns a travelling entity ahead of the eye.
	FireProjectile
)

// WeaponDef is a pure data row describing one weapon. Knockback values are
// scale factors applied per point of damage dealt.
type WeaponDef struct {
	Name string
	Kind FireKind

	FireIntervalMillis int32
	SwitchMillis       int32

	Damage    int32
	Knockback float32

	SelfDamageMult float32
	SelfKnockback  float32

	// Hitscan / beam.
	Range float32

	// Projectile.
	Speed          float32
	LifetimeMillis int32
	SplashRadius   float32
	SplashDamage   int32

	AmmoPerShot int32
	StartAmmo   int32
}

// Weapons is the authoritative weapon table, keyed by WeaponID.
var Weapons = [WeaponCount]WeaponDef{
	WeaponNone: {Name: "none"},
	WeaponMachinegun: {
		Name:               "machinegun",
		Kind:               FireHitscan,
		FireIntervalMillis: 100,
		SwitchMillis:       250,
		Damage:             7,
		Knockback:          1,
		SelfDamageMult:     0,
		Range:              8192,
		AmmoPerShot:        1,
		StartAmmo:          100,
	},
	WeaponRocketLauncher: {
		Name:               "rocket_launcher",
		Kind:               FireProjectile,
		FireIntervalMillis: 800,
		SwitchMillis:       250,
		Damage:             100,
		Knockback:          5,
		SelfDamageMult:     0.5,
		SelfKnockback:      5,
		Speed:              900,
		LifetimeMillis:     10000,
		SplashRadius:       120,
		SplashDamage:       100,
		AmmoPerShot:        1,
		StartAmmo:          25,
	},
	WeaponRailgun: {
		Name:               "railgun",
		Kind:               FireHitscan,
		FireIntervalMillis: 1500,
		SwitchMillis:       250,
		Damage:             90,
		Knockback:          3,
		Range:              8192,
		AmmoPerShot:        1,
		StartAmmo:          10,
	},
	WeaponLightningGun: {
		Name:               "lightning_gun",
		Kind:               FireBeam,
		FireIntervalMillis: 50,
		SwitchMillis:       250,
		Damage:             8,
		Knockback:          1.5,
		Range:              768,
		AmmoPerShot:        1,
		StartAmmo:          150,
	},
	WeaponPlasmaGun: {
		Name:               "plasma_gun",
		Kind:               FireProjectile,
		FireIntervalMillis: 100,
		SwitchMillis:       250,
		Damage:             20,
		Knockback:          2,
		SelfDamageMult:     0.5,
		SelfKnockback:      2,
		Speed:              2000,
		LifetimeMillis:     10000,
		SplashRadius:       20,
		SplashDamage:       15,
		AmmoPerShot:        1,
		StartAmmo:          120,
	},
}

// ValidWeapon reports whether id indexes a usable weapon row.
func ValidWeapon(id WeaponID) bool {
	return id > WeaponNone && id < WeaponCount
}
