package domain

// Known game identifiers. GameSettings carries exactly one entry per game.
const (
	GameAviator   = "AVIATOR"
	GameCrash     = "CRASH"
	GameRoulette  = "ROULETTE"
	GameMines     = "MINES"
	GameSlots     = "SLOTS"
	GamePoker     = "POKER"
	GameBlackjack = "BLACKJACK"
	GameDice      = "DICE"
	GamePlinko    = "PLINKO"
	GameLimbo     = "LIMBO"
	GameCrypto    = "CRYPTO"
)

// DepositMethod is one administrator-managed way to fund an account
type DepositMethod struct {
	ID      string `json:"id"`      // Method identity
	Name    string `json:"name"`    // Display label
	Icon    string `json:"icon"`    // Display icon
	Value   string `json:"value"`   // Destination: phone number, handle or address
	Enabled bool   `json:"enabled"` // Whether the method is offered
	Color   string `json:"color"`   // Display color
}

// GameConfig holds the administrator-controlled limits for one game
type GameConfig struct {
	Enabled   bool    `json:"enabled"`    // Whether the game accepts bets
	HouseEdge float64 `json:"house_edge"` // House edge percentage
	MinBet    float64 `json:"min_bet"`    // Minimum stake
	MaxBet    float64 `json:"max_bet"`    // Maximum stake
}

// AdminSettings is the configuration snapshot consumed read-only by
// games and the wallet flow; it is only ever replaced wholesale.
type AdminSettings struct {
	DepositMethods []DepositMethod       `json:"deposit_methods"` // Ordered method list
	MinDeposit     float64               `json:"min_deposit"`     // Global deposit floor
	MinWithdrawal  float64               `json:"min_withdrawal"`  // Global withdrawal floor
	WithdrawalFee  float64               `json:"withdrawal_fee"`  // Fee percentage on withdrawals
	GameSettings   map[string]GameConfig `json:"game_settings"`   // Per-game limits keyed by game identifier
}

// DefaultSettings returns the configuration active before any admin edit.
func DefaultSettings() AdminSettings {
	return AdminSettings{
		DepositMethods: []DepositMethod{
			{ID: "1", Name: "Vodafone Cash", Icon: "📞", Value: "01012345678", Enabled: true, Color: "bg-red-600"},
			{ID: "2", Name: "InstaPay", Icon: "⚡", Value: "boko@instapay", Enabled: true, Color: "bg-purple-600"},
			{ID: "3", Name: "USDT (TRC20)", Icon: "₮", Value: "T8xJp...3kL9", Enabled: true, Color: "bg-teal-600"},
		},
		MinDeposit:    50,
		MinWithdrawal: 100,
		WithdrawalFee: 5,
		GameSettings: map[string]GameConfig{
			GameAviator:   {Enabled: true, HouseEdge: 1.5, MinBet: 10, MaxBet: 10000},
			GameCrash:     {Enabled: true, HouseEdge: 1.5, MinBet: 10, MaxBet: 10000},
			GameRoulette:  {Enabled: true, HouseEdge: 2.7, MinBet: 10, MaxBet: 5000},
			GameMines:     {Enabled: true, HouseEdge: 2.0, MinBet: 10, MaxBet: 5000},
			GameSlots:     {Enabled: true, HouseEdge: 5.0, MinBet: 10, MaxBet: 2000},
			GamePoker:     {Enabled: true, HouseEdge: 1.0, MinBet: 50, MaxBet: 50000},
			GameBlackjack: {Enabled: true, HouseEdge: 0.5, MinBet: 10, MaxBet: 10000},
			GameDice:      {Enabled: true, HouseEdge: 1.0, MinBet: 10, MaxBet: 10000},
			GamePlinko:    {Enabled: true, HouseEdge: 2.0, MinBet: 10, MaxBet: 5000},
			GameLimbo:     {Enabled: true, HouseEdge: 1.0, MinBet: 10, MaxBet: 10000},
			GameCrypto:    {Enabled: true, HouseEdge: 0.1, MinBet: 10, MaxBet: 100000},
		},
	}
}
