package config

// CronJob pairs a schedule expression with the job function.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs is the static job map. Built-in jobs register themselves through
// cron.Register from their init(); add ad-hoc entries here.
var CronJobs = map[string]CronJob{
	// "myjob": {Schedule: "@every 1h", Job: myJobFunc},
}
