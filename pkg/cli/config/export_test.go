package config

// NewQuestionSetForTest creates a QuestionSet config for testing purposes
func NewQuestionSetForTest(categoriesPath, questionsPath string) *QuestionSet {
	return &QuestionSet{
		categoriesPath: categoriesPath,
		questionsPath:  questionsPath,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, storageDir, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		storageDir: storageDir,
		projectID:  projectID,
		databaseID: databaseID,
	}
}
