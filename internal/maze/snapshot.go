package maze

// Snapshot is a read-only view of one tick, for renderers and network
// clients. Positions are simulation pixels.
type Snapshot struct {
	Tick           int    `json:"tick"`
	Phase          Phase  `json:"phase"`
	Level          int    `json:"level"`
	LevelCount     int    `json:"level_count"`
	LevelName      string `json:"level_name"`
	Score          int    `json:"score"`
	AnimatedScore  int    `json:"animated_score"`
	Lives          int    `json:"lives"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	FinalSeconds   int    `json:"final_seconds"`
	Bonus          int    `json:"bonus"`
	Invincibility  int    `json:"invincibility"`
	TransitionLeft int    `json:"transition_left"`
	PlayerVisible  bool   `json:"player_visible"`
	PowerBlink     bool   `json:"power_blink"`
	AwaitingName   bool   `json:"awaiting_name"`

	Power       PowerSnapshot       `json:"power"`
	Player      PlayerSnapshot      `json:"player"`
	Adversaries []AdversarySnapshot `json:"adversaries"`
	Grid        GridSnapshot        `json:"grid"`
}

// PowerSnapshot describes the power window.
type PowerSnapshot struct {
	Active         bool `json:"active"`
	AboutToExpire  bool `json:"about_to_expire"`
	RemainingTicks int  `json:"remaining_ticks"`
}

// PlayerSnapshot describes the player entity.
type PlayerSnapshot struct {
	X             int       `json:"x"`
	Y             int       `json:"y"`
	Dir           Direction `json:"dir"`
	Facing        Direction `json:"facing"`
	Frame         int       `json:"frame"`
	MadeFirstMove bool      `json:"made_first_move"`
}

// AdversarySnapshot describes one adversary.
type AdversarySnapshot struct {
	X          int        `json:"x"`
	Y          int        `json:"y"`
	Dir        Direction  `json:"dir"`
	Appearance Appearance `json:"appearance"`
}

// GridSnapshot holds the maze as glyph rows. Eaten pickups print as spaces.
type GridSnapshot struct {
	Cols      int      `json:"cols"`
	Rows      int      `json:"rows"`
	TileSize  int      `json:"tile_size"`
	Cells     []string `json:"cells"`
	Remaining int      `json:"remaining"`
}

// Snapshot captures the current tick. It returns the zero Snapshot before
// the first Reset.
func (g *Game) Snapshot() Snapshot {
	if g.grid == nil {
		return Snapshot{}
	}
	m := g.match
	s := Snapshot{
		Tick:           g.clock,
		Phase:          m.Phase(),
		Level:          m.Level,
		LevelCount:     m.LevelCount,
		LevelName:      g.levels[m.Level-1].Name,
		Score:          m.Score,
		AnimatedScore:  m.AnimatedScore,
		Lives:          m.Lives,
		ElapsedSeconds: m.Elapsed / g.cfg.Timing.TickRate,
		FinalSeconds:   m.FinalSeconds,
		Bonus:          m.Bonus,
		Invincibility:  m.Invincibility,
		TransitionLeft: m.TransitionLeft,
		PlayerVisible:  m.PlayerVisible(),
		PowerBlink:     g.powerBlink,
		AwaitingName:   m.ReadyToSubmit(),
		Power: PowerSnapshot{
			Active:         g.player.Power.Active,
			AboutToExpire:  g.player.Power.AboutToExpire,
			RemainingTicks: g.player.Power.Remaining(g.clock),
		},
		Player: PlayerSnapshot{
			X:             g.player.Pos.X,
			Y:             g.player.Pos.Y,
			Dir:           g.player.Dir,
			Facing:        g.player.Facing,
			Frame:         g.player.Frame(),
			MadeFirstMove: g.player.MadeFirstMove,
		},
		Adversaries: make([]AdversarySnapshot, 0, len(g.adversaries)),
		Grid: GridSnapshot{
			Cols:      g.grid.Cols(),
			Rows:      g.grid.Rows(),
			TileSize:  g.grid.TileSize(),
			Cells:     make([]string, g.grid.Rows()),
			Remaining: g.grid.RemainingPickups(),
		},
	}

	for _, a := range g.adversaries {
		s.Adversaries = append(s.Adversaries, AdversarySnapshot{
			X: a.Pos.X, Y: a.Pos.Y, Dir: a.Dir, Appearance: a.Appearance,
		})
	}

	row := make([]rune, g.grid.Cols())
	for y := range s.Grid.Cells {
		for x := range row {
			row[x] = g.grid.Cell(x, y).Glyph()
		}
		s.Grid.Cells[y] = string(row)
	}
	return s
}
