package app

// MinPlayersToStartGame is the minimum number of occupied seats required to
// start a game. Kept centralized so the match handler and tests agree.
const MinPlayersToStartGame = 3
