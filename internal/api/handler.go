package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"rrsim/internal/experiment"
	"rrsim/internal/sched"
	"rrsim/internal/workload"
)

type SchedulerHandler interface {
	Enhanced(ctx *fiber.Ctx) error
	Traditional(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
	Sweep(ctx *fiber.Ctx) error
	Workloads(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config  sched.Config
	harness *experiment.Harness
	logger  *log.Logger
}

func NewSchedulerHandlerImpl(config sched.Config, logger *log.Logger) (*SchedulerHandlerImpl, error) {
	h, err := experiment.New(config, logger)
	if err != nil {
		return nil, err
	}
	return &SchedulerHandlerImpl{config: config, harness: h, logger: logger}, nil
}

func (s *SchedulerHandlerImpl) Enhanced(ctx *fiber.Ctx) error {
	request, err := parseRequest(ctx)
	if err != nil {
		return err
	}
	if err := s.checkLimits(request.Processes); err != nil {
		return s.fail(ctx, err)
	}
	factor, threshold := request.AdjustmentFactor, request.AgingThreshold
	if factor == 0 {
		factor = s.config.Enhanced.AdjustmentFactor
	}
	if threshold == 0 {
		threshold = s.config.Enhanced.AgingThreshold
	}
	policy, err := sched.NewEnhanced(factor, threshold)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runSingle(ctx, request, policy)
}

func (s *SchedulerHandlerImpl) Traditional(ctx *fiber.Ctx) error {
	request, err := parseRequest(ctx)
	if err != nil {
		return err
	}
	if err := s.checkLimits(request.Processes); err != nil {
		return s.fail(ctx, err)
	}
	quantum := request.Quantum
	if quantum == 0 {
		quantum = s.config.TraditionalQuanta[0]
	}
	policy, err := sched.NewTraditional(quantum)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runSingle(ctx, request, policy)
}

// Compare runs every configured policy. Without processes in the body the built-in scenarios are used.
func (s *SchedulerHandlerImpl) Compare(ctx *fiber.Ctx) error {
	request, err := parseRequest(ctx)
	if err != nil {
		return err
	}
	if err := s.checkLimits(request.Processes); err != nil {
		return s.fail(ctx, err)
	}
	ws := workload.Builtin()
	if len(request.Processes) > 0 {
		ws = []workload.Workload{{Name: "request", Processes: request.Processes}}
	}
	summary, err := s.harness.Compare(ctx.UserContext(), ws)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(summary)
}

func (s *SchedulerHandlerImpl) Sweep(ctx *fiber.Ctx) error {
	request, err := parseRequest(ctx)
	if err != nil {
		return err
	}
	if err := s.checkLimits(request.Processes); err != nil {
		return s.fail(ctx, err)
	}
	runs, err := s.harness.Sweep(ctx.UserContext(), workload.Workload{Name: "request", Processes: request.Processes})
	if err != nil {
		return s.fail(ctx, err)
	}
	response := SweepResponse{Runs: make([]ScheduleResponse, 0, len(runs))}
	for _, r := range runs {
		response.Runs = append(response.Runs, newScheduleResponse(r))
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) Workloads(ctx *fiber.Ctx) error {
	return ctx.JSON(workload.Builtin())
}

func (s *SchedulerHandlerImpl) runSingle(ctx *fiber.Ctx, request ScheduleRequest, policy sched.Policy) error {
	runs, err := s.harness.RunAll(ctx.UserContext(), workload.Workload{Name: "request", Processes: request.Processes}, []sched.Policy{policy})
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(newScheduleResponse(runs[0]))
}

func parseRequest(ctx *fiber.Ctx) (ScheduleRequest, error) {
	var request ScheduleRequest
	if len(ctx.Body()) == 0 {
		return request, nil
	}
	if err := ctx.BodyParser(&request); err != nil {
		return request, fiber.NewError(fiber.StatusBadRequest, "invalid request format")
	}
	return request, nil
}

// checkLimits bounds the simulated time a single request may ask for.
func (s *SchedulerHandlerImpl) checkLimits(processes []sched.Descriptor) error {
	for _, d := range processes {
		if d.ArrivalTime > s.config.MaxArrivalTime {
			return fmt.Errorf("%w: process %d arrives at %d, limit is %d", sched.ErrInvalidWorkload, d.ID, d.ArrivalTime, s.config.MaxArrivalTime)
		}
	}
	return nil
}

func (s *SchedulerHandlerImpl) fail(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, sched.ErrInvalidWorkload) || errors.Is(err, sched.ErrConfiguration) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	s.logger.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	return fiber.NewError(fiber.StatusInternalServerError, "can not process request")
}
