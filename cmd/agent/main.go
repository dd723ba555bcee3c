// Autonomous job discovery agent.
// Scan cycle: Discover → Crawl → Parse → Rule Score → Experience →
//             Visa → AI → Save → Notify → Export

package main

import (
	"context"
	"fmt"
	"time"

	"go-jobhunter-agent/internal/ai"
	"go-jobhunter-agent/internal/config"
	"go-jobhunter-agent/internal/crawler"
	"go-jobhunter-agent/internal/discovery"
	"go-jobhunter-agent/internal/exporter"
	"go-jobhunter-agent/internal/models"
	"go-jobhunter-agent/internal/parsing"
	"go-jobhunter-agent/internal/pipeline"
	"go-jobhunter-agent/internal/scraper"
	"go-jobhunter-agent/internal/scraper/ashby"
	"go-jobhunter-agent/internal/scraper/greenhouse"
	"go-jobhunter-agent/internal/scraper/lever"
	"go-jobhunter-agent/internal/scraper/workable"
	"go-jobhunter-agent/internal/store"
	"go-jobhunter-agent/internal/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// cycleTimeout bounds one full scan cycle
const cycleTimeout = 30 * time.Minute

// maxParsedPerDomain limits page parses per crawled domain
const maxParsedPerDomain = 10

type agent struct {
	cfg       *config.Config
	store     *store.Store
	pipeline  *pipeline.Pipeline
	scrapers  []scraper.Scraper
	discovery *discovery.Engine
	crawler   *crawler.Crawler
	parser    *parsing.PageParser
	bot       *telegram.Bot
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	cfg := config.Load()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("❌ Failed to open database: %v", err)
	}
	defer st.Close()
	logrus.Info("✅ Database initialized (all tables ready)")

	var bot *telegram.Bot
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err = telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logrus.Warnf("⚠️ Failed to init Telegram bot: %v", err)
			bot = nil
		} else {
			logrus.Info("🤖 Telegram bot initialized")
		}
	}

	client := ai.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
	validator := ai.NewValidator(client, st)
	parser := parsing.NewPageParser()

	a := &agent{
		cfg:       cfg,
		store:     st,
		pipeline:  pipeline.New(validator, parser, st),
		discovery: discovery.NewEngine(st),
		crawler:   crawler.New(),
		parser:    parser,
		bot:       bot,
		scrapers: []scraper.Scraper{
			greenhouse.New(cfg.GreenhouseCompanies),
			lever.New(cfg.LeverCompanies),
			ashby.New(cfg.AshbyCompanies),
			workable.New(cfg.WorkableCompanies),
		},
	}

	logrus.Info("🚀 Autonomous Job Discovery Agent — Started")
	logrus.Infof("   Scan interval: %ds", cfg.ScanIntervalSeconds)

	// first cycle immediately, then on the interval; overlapping
	// cycles are skipped rather than stacked
	a.scan()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %ds", cfg.ScanIntervalSeconds), a.scan); err != nil {
		logrus.Fatalf("❌ Failed to schedule scan: %v", err)
	}
	c.Start()

	select {}
}

// scan runs one complete cycle through the 10-step pipeline.
func (a *agent) scan() {
	logrus.Infof("🔎 SCAN CYCLE [%s]", time.Now().Format("2006-01-02 15:04"))

	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	// Steps 1-3: collect
	raw := a.collect(ctx)
	logrus.Infof("📊 Total raw jobs collected: %d", len(raw))

	unique := pipeline.Deduplicate(raw)
	logrus.Infof("📊 After deduplication: %d", len(unique))

	unseen := a.pipeline.FilterUnseen(unique)
	logrus.Infof("📊 Unseen (new) jobs: %d", len(unseen))

	if len(unseen) == 0 {
		logrus.Info("ℹ️ No new jobs to process this cycle")
		return
	}

	// Steps 4-7: filter
	passed, stats := a.pipeline.Run(ctx, unseen)
	if len(passed) == 0 {
		logrus.Info("ℹ️ No jobs passed all filters this cycle")
		a.bumpStats(len(unseen), 0, stats)
		return
	}

	// Steps 8-10: save, notify, export
	saved := a.processResults(passed)
	a.bumpStats(len(unseen), saved, stats)
}

// collect gathers raw postings from the ATS scrapers and the web
// discovery/crawl/parse chain. Every source failure is survivable.
func (a *agent) collect(ctx context.Context) []models.Posting {
	var all []models.Posting

	for _, s := range a.scrapers {
		jobs, err := s.Scrape(ctx)
		if err != nil {
			logrus.Warnf("⚠️ %s failed: %v", s.Name(), err)
		}
		all = append(all, jobs...)
	}

	newDomains := a.discovery.Discover(ctx, a.cfg.DiscoveryBatchSize)
	logrus.Infof("  🌍 New domains discovered: %d", len(newDomains))

	domains, err := a.store.UncrawledDomains(a.cfg.CrawlMaxDomains)
	if err != nil {
		logrus.Warnf("⚠️ Could not load domains to crawl: %v", err)
		return all
	}

	if len(domains) == 0 {
		return all
	}

	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = d.Domain
	}

	for domain, jobURLs := range a.crawler.Crawl(names) {
		parsed := 0
		for _, u := range jobURLs {
			if parsed >= maxParsedPerDomain {
				break
			}
			if p := a.parser.ParseJobPage(u); p != nil {
				all = append(all, *p)
				parsed++
			}
		}
		if err := a.store.MarkCrawled(domain, parsed); err != nil {
			logrus.Debugf("Mark crawled %s: %v", domain, err)
		}
	}

	return all
}

// processResults saves accepted postings, notifies, and exports.
// Returns the number of newly saved jobs.
func (a *agent) processResults(passed []models.Posting) int {
	newCount := 0
	skipCount := 0

	for _, p := range passed {
		saved, err := a.store.SaveJob(p)
		if err != nil {
			logrus.Warnf("⚠️ Save failed for %.40s: %v", p.Title, err)
			continue
		}
		if !saved {
			skipCount++
			continue
		}
		newCount++

		if a.bot != nil {
			if err := a.bot.SendJob(p); err != nil {
				logrus.Warnf("  Telegram error: %v", err)
			}
			// 1 second delay to avoid 429
			time.Sleep(1 * time.Second)
		}

		logrus.Infof("  💾 Saved: %s — %s [%s]", p.Company, p.Title, p.Source)
	}

	if err := exporter.ExportToday(a.store, a.cfg.ExportPath); err != nil {
		logrus.Warnf("  Export failed: %v", err)
		if a.bot != nil {
			_ = a.bot.SendError(err)
		}
	}

	logrus.Infof("✅ New jobs saved: %d | Skipped (duplicates): %d", newCount, skipCount)

	if a.bot != nil {
		msg := fmt.Sprintf("Scan cycle done: %d new jobs saved, %d duplicates skipped.", newCount, skipCount)
		if err := a.bot.SendStatus(msg); err != nil {
			logrus.Warnf("⚠️ Failed to send status to Telegram: %v", err)
		}
	}

	return newCount
}

func (a *agent) bumpStats(found, saved int, stats pipeline.Stats) {
	today := time.Now().Format("2006-01-02")
	err := a.store.BumpDailyStats(today, found, saved, stats.Rule, stats.Experience, stats.Visa, stats.AI)
	if err != nil {
		logrus.Warnf("⚠️ Daily stats update failed: %v", err)
	}
}
