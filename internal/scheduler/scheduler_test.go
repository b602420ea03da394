package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantive/marketcore/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }

func (j *stubJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(logger.NewNop())
	job := &stubJob{name: "refresh", schedule: "@every 1h"}

	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if err := s.AddJob(job); err == nil {
		t.Error("AddJob() accepted a duplicate job name")
	}
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(logger.NewNop())
	job := &stubJob{name: "bad", schedule: "every single day"}

	if err := s.AddJob(job); err == nil {
		t.Error("AddJob() accepted an invalid cron expression")
	}
}

func TestRunJob(t *testing.T) {
	s := New(logger.NewNop())
	job := &stubJob{name: "refresh", schedule: "@every 1h"}

	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if err := s.RunJob("refresh"); err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	result := waitForResult(t, s, "refresh")
	if !result.Success {
		t.Errorf("result.Success = false, error = %q", result.Error)
	}
	if result.JobName != "refresh" {
		t.Errorf("result.JobName = %q, want refresh", result.JobName)
	}
	if job.runs.Load() != 1 {
		t.Errorf("job ran %d times, want 1", job.runs.Load())
	}
}

func TestRunJob_Unknown(t *testing.T) {
	s := New(logger.NewNop())

	if err := s.RunJob("ghost"); err == nil {
		t.Error("RunJob() succeeded for an unregistered job")
	}
}

func TestRunJob_RecordsFailure(t *testing.T) {
	s := New(logger.NewNop())
	job := &stubJob{name: "flaky", schedule: "@every 1h", err: errors.New("upstream down")}

	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if err := s.RunJob("flaky"); err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	result := waitForResult(t, s, "flaky")
	if result.Success {
		t.Error("result.Success = true for a failed run")
	}
	if result.Error != "upstream down" {
		t.Errorf("result.Error = %q, want upstream down", result.Error)
	}
}

func TestStartStop(t *testing.T) {
	s := New(logger.NewNop())
	job := &stubJob{name: "tick", schedule: "@every 1s"}

	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}

	s.Start()
	time.Sleep(1200 * time.Millisecond)
	s.Stop()

	if job.runs.Load() == 0 {
		t.Error("scheduled job never ran while the scheduler was started")
	}
}

func waitForResult(t *testing.T, s *Scheduler, jobName string) JobResult {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if result, ok := s.LastResult(jobName); ok {
			return result
		}
		if time.Now().After(deadline) {
			t.Fatalf("no result recorded for job %s", jobName)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
