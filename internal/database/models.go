package database

// MatchResult is the persisted outcome of one finished Schieber match.
// Seats 0/2 form team 1, seats 1/3 team 2.
type MatchResult struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Player3     string `json:"player3"`
	Player4     string `json:"player4"`
	Team1Score  int    `json:"team1_score"`
	Team2Score  int    `json:"team2_score"`
	WinnerTeam  int    `json:"winner_team"`
	TargetScore int    `json:"target_score"`
	HandsPlayed int    `json:"hands_played"`
}
