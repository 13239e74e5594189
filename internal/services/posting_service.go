package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/justsurfingit/jobs-tracker/internal/storage"
)

type PostingService struct {
	Board PostingStore
}

func NewPostingService(board PostingStore) *PostingService {
	return &PostingService{Board: board}
}

func (s *PostingService) ListPostings(ctx context.Context) ([]models.Posting, error) {
	return s.Board.List(ctx)
}

func (s *PostingService) GetPosting(ctx context.Context, id string) (*models.Posting, error) {
	p, err := s.Board.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPostingNotFound) {
			return nil, fmt.Errorf("posting %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// Seed loads the sample board. Postings that already exist are skipped, so it
// is safe to run repeatedly.
func (s *PostingService) Seed(ctx context.Context, now time.Time) (int, error) {
	written := 0
	for i, sample := range samplePostings {
		p := sample
		p.ID = strconv.Itoa(i + 1)
		p.CreatedAt = now.UTC().Format(time.RFC3339)

		ok, err := s.Board.Put(ctx, &p)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		} else {
			log.Printf("Posting %s already exists, skipping", p.ID)
		}
	}
	return written, nil
}

var samplePostings = []models.Posting{
	{Title: "Frontend Engineer", Description: "Build and maintain user interfaces with React and TypeScript.", Location: "San Francisco, CA",
		Details: "Work with a team of passionate engineers to deliver high-quality web applications. Experience with Next.js and Tailwind CSS is a plus."},
	{Title: "Backend Developer", Description: "Design and implement scalable APIs and services.", Location: "Remote",
		Details: "You will work with Node.js, PostgreSQL, and Supabase. Familiarity with cloud deployments is preferred."},
	{Title: "UI/UX Designer", Description: "Create beautiful and intuitive user experiences.", Location: "New York, NY",
		Details: "Collaborate with product and engineering to design wireframes, prototypes, and final UI assets."},
	{Title: "DevOps Engineer", Description: "Automate deployments and monitor cloud infrastructure.", Location: "Austin, TX",
		Details: "Experience with Vercel, AWS, CI/CD pipelines, and infrastructure as code tools."},
	{Title: "Product Manager", Description: "Drive product vision and execution for web applications.", Location: "Seattle, WA",
		Details: "Work closely with engineering, design, and stakeholders to deliver features on time."},
	{Title: "QA Engineer", Description: "Test and ensure the quality of our software releases.", Location: "Remote",
		Details: "Write and execute test plans, automate regression tests, and report bugs."},
	{Title: "Mobile Developer", Description: "Develop cross-platform mobile apps using React Native.", Location: "Chicago, IL",
		Details: "Deliver performant and user-friendly mobile experiences for iOS and Android."},
	{Title: "Data Scientist", Description: "Analyze data and build predictive models.", Location: "Boston, MA",
		Details: "Work with Python, SQL, and machine learning frameworks to extract insights from data."},
	{Title: "Technical Writer", Description: "Document APIs, user guides, and developer tutorials.", Location: "Remote",
		Details: "Collaborate with engineers to create clear and concise technical documentation."},
	{Title: "Support Engineer", Description: "Help customers resolve technical issues and provide product guidance.", Location: "Denver, CO",
		Details: "Respond to support tickets, troubleshoot problems, and escalate bugs as needed."},
}
