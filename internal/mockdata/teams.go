package mockdata

var leagueTeams = map[string][]string{
	"premier-league": {
		"Manchester City", "Arsenal", "Liverpool", "Aston Villa", "Tottenham",
		"Manchester United", "Newcastle", "Brighton", "Chelsea", "Bournemouth",
		"Fulham", "Wolves", "West Ham", "Crystal Palace", "Everton",
		"Brentford", "Nottingham Forest", "Luton", "Burnley", "Sheffield United",
	},
	"la-liga": {
		"Real Madrid", "Barcelona", "Atletico Madrid", "Girona", "Real Sociedad",
		"Real Betis", "Athletic Bilbao", "Valencia", "Villarreal", "Getafe",
		"Sevilla", "Osasuna", "Alaves", "Las Palmas", "Mallorca",
		"Rayo Vallecano", "Celta Vigo", "Cadiz", "Granada", "Almeria",
	},
	"serie-a": {
		"Inter Milan", "Juventus", "AC Milan", "Napoli", "Roma",
		"Lazio", "Atalanta", "Fiorentina", "Bologna", "Torino",
		"Monza", "Genoa", "Lecce", "Hellas Verona", "Cagliari",
		"Sassuolo", "Empoli", "Udinese", "Frosinone", "Salernitana",
	},
	"bundesliga": {
		"Bayer Leverkusen", "Bayern Munich", "Stuttgart", "Borussia Dortmund", "RB Leipzig",
		"Eintracht Frankfurt", "Freiburg", "Hoffenheim", "Augsburg", "Heidenheim",
		"Werder Bremen", "Wolfsburg", "Borussia Monchengladbach", "Union Berlin", "Bochum",
		"FC Koln", "Mainz 05", "Darmstadt",
	},
	"ligue-1": {
		"PSG", "Monaco", "Brest", "Lille", "Nice",
		"Lyon", "Lens", "Marseille", "Rennes", "Toulouse",
		"Reims", "Montpellier", "Strasbourg", "Nantes", "Le Havre",
		"Metz", "Lorient", "Clermont",
	},
}

// Competitions in the order the live snapshot lists them.
var liveCompetitions = []string{"Premier League", "La Liga", "Serie A", "Bundesliga", "Ligue 1", "Champions League"}

var liveTeams = map[string][]string{
	"Premier League":   {"Man City", "Arsenal", "Liverpool", "Chelsea", "Man United", "Tottenham", "Newcastle", "Brighton"},
	"La Liga":          {"Real Madrid", "Barcelona", "Atletico Madrid", "Real Sociedad", "Villarreal", "Real Betis"},
	"Serie A":          {"Napoli", "Inter", "Milan", "Juventus", "Roma", "Lazio"},
	"Bundesliga":       {"Bayern Munich", "Dortmund", "RB Leipzig", "Union Berlin", "Freiburg"},
	"Ligue 1":          {"PSG", "Monaco", "Marseille", "Lens", "Lyon", "Nice"},
	"Champions League": {"Man City", "Real Madrid", "Bayern Munich", "Barcelona", "PSG", "Inter"},
}

var liveStatuses = []string{"FT", "90", "87", "73", "65", "45+2", "43", "32", "15", "7", "HT"}

var nationalities = []string{"England", "Brazil", "France", "Spain", "Germany", "Argentina", "Belgium", "Portugal"}

var fixtureOpponents = []string{"Arsenal", "Liverpool", "Man City", "Man United", "Tottenham", "Chelsea", "Newcastle", "Brighton"}

// mockTransfers is fixed so repeated fallback cycles dedupe on the natural key.
var mockTransfers = []struct {
	player, age, nationality, position, from, to, fee string
}{
	{"Marco Bellini", "24", "Italy", "Centre-Forward", "Atalanta", "Arsenal", "€45.00m"},
	{"Lucas Moreau", "21", "France", "Central Midfield", "Lyon", "Borussia Dortmund", "€28.50m"},
	{"Diego Alvarez", "27", "Argentina", "Left Winger", "Sevilla", "Napoli", "loan transfer"},
	{"Jonas Keller", "30", "Germany", "Goalkeeper", "Wolfsburg", "Bayern Munich", "free transfer"},
	{"Tomas Silva", "19", "Portugal", "Right-Back", "Benfica", "Manchester City", "€32.00m"},
	{"Kevin Adeyemi", "22", "England", "Attacking Midfield", "Brighton", "Chelsea", "€55.00m"},
	{"Pablo Ortega", "25", "Spain", "Centre-Back", "Real Sociedad", "Atletico Madrid", "€18.00m"},
	{"Andre Martins", "28", "Brazil", "Second Striker", "Lille", "PSG", "Loan fee: €3.00m"},
	{"Yannick Dubois", "23", "Belgium", "Defensive Midfield", "Club Brugge", "Newcastle", "€22.00m"},
	{"Erik Lindqvist", "26", "Sweden", "Left-Back", "Fulham", "Juventus", "€12.50m"},
	{"Mateo Rossi", "20", "Italy", "Right Winger", "Genoa", "Inter Milan", "loan transfer"},
	{"Samuel Okoro", "29", "Nigeria", "Centre-Forward", "Monaco", "Tottenham", "Undisclosed"},
}
