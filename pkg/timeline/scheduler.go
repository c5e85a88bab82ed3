package timeline

import (
	"log"
	"time"
)

// entry 一个待执行的调度项
type entry struct {
	due      time.Duration
	seq      uint64
	name     string
	once     func()
	repeat   func() bool
	interval time.Duration
}

// Scheduler 基于时钟的延时步骤调度器
//
// 替代嵌套的定时回调：每个步骤带有到期时间，Update 时按到期顺序执行。
// 在回调内部调度的新步骤以当前步骤的到期时间为基准，保证链式延时不漂移。
// 不可取消，与整个会话同生命周期。
type Scheduler struct {
	clock   Clock
	entries []*entry
	seq     uint64

	firing bool
	base   time.Duration // 正在执行的步骤的到期时间
}

// NewScheduler 创建调度器
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock:   clock,
		entries: make([]*entry, 0),
	}
}

// Clock 返回调度器使用的时钟
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// After 在 d 之后执行一次 fn
func (s *Scheduler) After(d time.Duration, name string, fn func()) {
	s.insert(&entry{
		due:  s.now() + d,
		name: name,
		once: fn,
	})
}

// Every 每隔 interval 执行一次 fn，fn 返回 false 时停止
//
// 第一次执行在 interval 之后。
func (s *Scheduler) Every(interval time.Duration, name string, fn func() bool) {
	if interval <= 0 {
		log.Printf("[Scheduler] Warning: invalid interval %v for %s, ignored", interval, name)
		return
	}
	s.insert(&entry{
		due:      s.now() + interval,
		name:     name,
		repeat:   fn,
		interval: interval,
	})
}

// Update 执行所有已到期的步骤，返回执行次数
func (s *Scheduler) Update() int {
	now := s.clock.Now()
	fired := 0

	for len(s.entries) > 0 && s.entries[0].due <= now {
		e := s.entries[0]
		s.entries = s.entries[1:]

		s.firing = true
		s.base = e.due
		if e.once != nil {
			e.once()
		} else if e.repeat != nil && e.repeat() {
			e.due += e.interval
			s.reinsert(e)
		}
		s.firing = false
		fired++
	}

	return fired
}

// Pending 返回尚未执行的步骤数
func (s *Scheduler) Pending() int {
	return len(s.entries)
}

// PendingNamed 返回指定名称的待执行步骤数
func (s *Scheduler) PendingNamed(name string) int {
	count := 0
	for _, e := range s.entries {
		if e.name == name {
			count++
		}
	}
	return count
}

func (s *Scheduler) now() time.Duration {
	if s.firing {
		return s.base
	}
	return s.clock.Now()
}

func (s *Scheduler) insert(e *entry) {
	s.seq++
	e.seq = s.seq
	s.reinsert(e)
}

// reinsert 按 (due, seq) 有序插入
func (s *Scheduler) reinsert(e *entry) {
	i := len(s.entries)
	for i > 0 {
		prev := s.entries[i-1]
		if prev.due < e.due || (prev.due == e.due && prev.seq < e.seq) {
			break
		}
		i--
	}
	s.entries = append(s.entries, nil)
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}
