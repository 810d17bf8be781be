package scene

// DriveEnemies runs one decision step for every enemy in s against the first
// player and hands each enemy's chosen velocity to its body. It returns the
// total damage dealt to the player by attacking enemies at time now. Call it
// before Update so the new velocities are integrated in the same frame.
func DriveEnemies(s *Scene, now float64) int {
	_, player, ok := s.firstPlayer()
	if !ok {
		return 0
	}

	damage := 0
	for _, h := range s.order {
		enemy, ok := s.objects[h].(*Enemy)
		if !ok || !enemy.Active() {
			continue
		}
		s.world.SetVelocity(h, enemy.Think(player.Position()))
		if enemy.State() == EnemyAttacking {
			damage += enemy.Attack(now)
		}
	}
	if damage > 0 {
		player.TakeDamage(damage)
	}
	return damage
}

func (s *Scene) firstPlayer() (Handle, *Player, bool) {
	for _, h := range s.order {
		if p, ok := s.objects[h].(*Player); ok && p.Active() {
			return h, p, true
		}
	}
	return 0, nil, false
}
