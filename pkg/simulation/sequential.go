package simulation

// RunSequential runs every task back-to-back on a cluster sized to the largest task.
func RunSequential(tasks []Task) (Result, error) {
	if err := validateTasks(tasks); err != nil {
		return Result{}, err
	}
	return newResult(tasks, MaxResource(tasks), TotalDuration(tasks)), nil
}
