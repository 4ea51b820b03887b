package repository

import "quiz_web/internal/storage"

type Repositories struct {
	User        UserRepository
	Question    QuestionRepository
	Progress    ProgressRepository
	Leaderboard LeaderboardRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Question:    NewQuestionRepository(db),
		Progress:    NewProgressRepository(db),
		Leaderboard: NewLeaderboardRepository(db),
	}
}
