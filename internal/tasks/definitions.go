package tasks

// DefineTasks registers all available tasks
func DefineTasks() {
	// Register general tasks
	RegisterHandler(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)

	// Register member maintenance tasks
	RegisterHandler(RefreshStatusesTask.TaskID(), RefreshStatusesTask.HandleExecution)

	// Register reminder tasks
	RegisterHandler(SendRenewalRemindersTask.TaskID(), SendRenewalRemindersTask.HandleExecution)
}
