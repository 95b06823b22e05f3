package cronjobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"go-carewatch/poller"
)

// InitCronJobs schedules the environmental poll for every configured
// location. The returned cron should be stopped (together with the poller)
// on shutdown. Overlap handling lives in the poller itself: a tick that
// lands while the prior poll for the same location is still running is
// dropped, not queued.
func InitCronJobs(p *poller.Poller, locations []string, spec string) *cron.Cron {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	for _, location := range locations {
		loc := location
		_, err := c.AddFunc(spec, func() {
			log.Printf("\nCronJob: Environmental poll for %s", loc)
			p.PollLocation(context.Background(), loc)
		})
		if err != nil {
			log.Println("Error scheduling environmental poll for", loc, err)
		}
	}

	c.Start()
	return c
}
