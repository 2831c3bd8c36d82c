package chat_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PromoPilot/bot/chat"
	"PromoPilot/bot/workflows/content"
	"PromoPilot/bot/workflows/mainmenu"
	"PromoPilot/bot/workflows/push"
	"PromoPilot/entity"
)

type sentMenu struct {
	chatID string
	text   string
	rows   [][]chat.MenuButton
}

type fakeMessenger struct {
	texts []string
	menus []sentMenu
}

func (m *fakeMessenger) SendText(chatID, text string) error {
	m.texts = append(m.texts, text)
	return nil
}

func (m *fakeMessenger) SendMenu(chatID, text string, rows [][]chat.MenuButton) error {
	m.menus = append(m.menus, sentMenu{chatID: chatID, text: text, rows: rows})
	return nil
}

func (m *fakeMessenger) SendTyping(chatID string) error { return nil }

func (m *fakeMessenger) lastMenu() sentMenu {
	return m.menus[len(m.menus)-1]
}

type fakeCatalog struct {
	records []entity.ContentRecord
	err     error
}

func (c *fakeCatalog) AllRecords(ctx context.Context) ([]entity.ContentRecord, error) {
	return c.records, c.err
}

func (c *fakeCatalog) UniqueValues(ctx context.Context, field string) []string {
	if c.err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var values []string
	for _, record := range c.records {
		if v := record.Facet(field); v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

type fakeResolver struct {
	link string
	err  error
}

func (r *fakeResolver) ShareableLink(ctx context.Context, assetID string) (string, error) {
	return r.link, r.err
}

type fakeGenerator struct {
	copyText string
	err      error
	lastReq  entity.PushRequest
}

func (g *fakeGenerator) Generate(ctx context.Context, req entity.PushRequest) (string, error) {
	g.lastReq = req
	return g.copyText, g.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, cat content.Catalog, resolver content.AssetResolver, gen push.Generator) (*chat.Engine, *chat.MemoryStorage) {
	t.Helper()

	lg := testLogger()
	storage := chat.NewMemoryStorage()

	engine := chat.NewEngine(storage, lg)
	engine.RegisterWorkflow(mainmenu.NewWorkflow())
	engine.RegisterWorkflow(content.NewWorkflow(cat, resolver, lg))
	engine.RegisterWorkflow(push.NewWorkflow(gen, lg))
	engine.SetEntryWorkflow(mainmenu.WorkflowID)

	return engine, storage
}

func fitnessCatalog() *fakeCatalog {
	return &fakeCatalog{records: []entity.ContentRecord{
		{
			Audience: "Teens", Language: "English", Country: "USA",
			Topic: "Fitness", Format: "Image",
			Text: "Get moving today!", ImageID: "img-1",
		},
		{
			Audience: "Adults", Language: "Spanish", Country: "Mexico",
			Topic: "Finance", Format: "Text",
			Text: "Ahorra más cada día.",
		},
	}}
}

func TestMessageWithoutStateAsksToRestart(t *testing.T) {
	engine, storage := newEngine(t, &fakeCatalog{}, &fakeResolver{}, &fakeGenerator{})
	m := &fakeMessenger{}

	err := engine.HandleMessage(context.Background(), m, "telegram", "42", "42", "hello")
	require.NoError(t, err)

	require.Len(t, m.texts, 1)
	assert.Equal(t, "Please start over with /start\nIf you need help, use /help command.", m.texts[0])

	state, err := storage.Load(context.Background(), "telegram", "42")
	require.NoError(t, err)
	assert.Nil(t, state, "no state must be created for an unknown user")
}

func TestRestartShowsMainMenu(t *testing.T) {
	engine, storage := newEngine(t, &fakeCatalog{}, &fakeResolver{}, &fakeGenerator{})
	m := &fakeMessenger{}

	require.NoError(t, engine.Restart(context.Background(), m, "telegram", "42", "42", "tester"))

	require.Len(t, m.menus, 1)
	assert.Equal(t, "Welcome! Choose an option:", m.menus[0].text)
	require.Len(t, m.menus[0].rows, 2)
	assert.Equal(t, "Generate Content", m.menus[0].rows[0][0].Text)
	assert.Equal(t, "Use push-generator", m.menus[0].rows[1][0].Text)

	state, err := storage.Load(context.Background(), "telegram", "42")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, mainmenu.WorkflowID, state.WorkflowID)
}

func TestIdleUnknownTextIsNoop(t *testing.T) {
	engine, storage := newEngine(t, &fakeCatalog{}, &fakeResolver{}, &fakeGenerator{})
	m := &fakeMessenger{}
	ctx := context.Background()

	require.NoError(t, engine.Restart(ctx, m, "telegram", "42", "42", "tester"))
	sentBefore := len(m.texts) + len(m.menus)

	require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", "whatever"))

	assert.Equal(t, sentBefore, len(m.texts)+len(m.menus), "idle text must not produce a reply")

	state, err := storage.Load(ctx, "telegram", "42")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, mainmenu.WorkflowID, state.WorkflowID)
}

func walkContentFlow(t *testing.T, engine *chat.Engine, m *fakeMessenger, answers []string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, engine.Restart(ctx, m, "telegram", "42", "42", "tester"))
	require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", "Generate Content"))

	for _, answer := range answers {
		require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", answer))
	}
}

func TestContentFlowReturnsMatchingRecord(t *testing.T) {
	cat := fitnessCatalog()
	engine, storage := newEngine(t, cat, &fakeResolver{link: "https://drive.example/img-1"}, &fakeGenerator{})
	m := &fakeMessenger{}

	walkContentFlow(t, engine, m, []string{"Teens", "English", "USA", "Fitness", "Image"})

	// Menus: main menu + five facet keyboards.
	require.Len(t, m.menus, 6)
	assert.Equal(t, "Please select your audience:", m.menus[1].text)
	assert.Equal(t, "Great! Now select the language:", m.menus[2].text)
	assert.Equal(t, "Perfect! Choose the country:", m.menus[3].text)
	assert.Equal(t, "Choose the topic:", m.menus[4].text)
	assert.Equal(t, "Finally, choose the format:", m.menus[5].text)

	require.Len(t, m.texts, 1)
	assert.Equal(t, "Here's your content:\n\nGet moving today!\n\nImage: https://drive.example/img-1", m.texts[0])

	state, err := storage.Load(context.Background(), "telegram", "42")
	require.NoError(t, err)
	assert.Nil(t, state, "terminal step must delete the state")
}

func TestContentFlowImageFailureIsNonFatal(t *testing.T) {
	cat := fitnessCatalog()
	engine, _ := newEngine(t, cat, &fakeResolver{err: errors.New("drive down")}, &fakeGenerator{})
	m := &fakeMessenger{}

	walkContentFlow(t, engine, m, []string{"Teens", "English", "USA", "Fitness", "Image"})

	require.Len(t, m.texts, 1)
	assert.Equal(t, "Here's your content:\n\nGet moving today!", m.texts[0])
}

func TestContentFlowNoMatch(t *testing.T) {
	cat := fitnessCatalog()
	engine, storage := newEngine(t, cat, &fakeResolver{}, &fakeGenerator{})
	m := &fakeMessenger{}

	walkContentFlow(t, engine, m, []string{"Teens", "English", "USA", "Fitness", "Video"})

	require.Len(t, m.texts, 1)
	assert.Equal(t, "Sorry, no content found matching your criteria. Try different options.", m.texts[0])

	state, err := storage.Load(context.Background(), "telegram", "42")
	require.NoError(t, err)
	assert.Nil(t, state, "no-match still deletes the state")
}

func TestContentFlowCatalogFailureDeletesState(t *testing.T) {
	cat := fitnessCatalog()
	engine, storage := newEngine(t, cat, &fakeResolver{}, &fakeGenerator{})
	m := &fakeMessenger{}

	walkContentFlow(t, engine, m, []string{"Teens", "English", "USA", "Fitness"})
	cat.err = errors.New("sheets unavailable")
	require.NoError(t, engine.HandleMessage(context.Background(), m, "telegram", "42", "42", "Image"))

	require.Len(t, m.texts, 1)
	assert.Equal(t, "An error occurred while getting content.\nPlease try again with /start", m.texts[0])

	state, err := storage.Load(context.Background(), "telegram", "42")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestContentFlowChunksLongText(t *testing.T) {
	long := strings.Repeat("x", 9000)
	cat := &fakeCatalog{records: []entity.ContentRecord{
		{Audience: "Teens", Language: "English", Country: "USA", Topic: "Fitness", Format: "Text", Text: long},
	}}
	engine, _ := newEngine(t, cat, &fakeResolver{}, &fakeGenerator{})
	m := &fakeMessenger{}

	walkContentFlow(t, engine, m, []string{"Teens", "English", "USA", "Fitness", "Text"})

	reply := "Here's your content:\n\n" + long
	expected := (len([]rune(reply)) + chat.MaxMessageLen - 1) / chat.MaxMessageLen
	require.Len(t, m.texts, expected)
	for _, chunk := range m.texts {
		assert.LessOrEqual(t, len([]rune(chunk)), chat.MaxMessageLen)
	}
	assert.Equal(t, reply, strings.Join(m.texts, ""))
}

func walkPushFlow(t *testing.T, engine *chat.Engine, m *fakeMessenger) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, engine.Restart(ctx, m, "telegram", "42", "42", "tester"))
	require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", "Use push-generator"))

	for _, answer := range []string{"SuperApp", "USA", "English", "https://apps.example/superapp", "Summer sale"} {
		require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", answer))
	}
}

func TestPushFlowGeneratesCopy(t *testing.T) {
	gen := &fakeGenerator{copyText: "[English] Don't miss out\n(17) || _Don't miss out_"}
	engine, storage := newEngine(t, &fakeCatalog{}, &fakeResolver{}, gen)
	m := &fakeMessenger{}

	walkPushFlow(t, engine, m)

	assert.Equal(t, []string{
		"What's your product name?",
		"Which country are you targeting?",
		"What language should the copy be in?",
		"Please provide the App Store/Google Play link:",
		"What message do you want to convey?",
		"🔄 Generating push notifications... Please wait.",
		gen.copyText,
		"Want to generate more push notifications? Type /start",
	}, m.texts)

	assert.Equal(t, entity.PushRequest{
		Product:   "SuperApp",
		Country:   "USA",
		Language:  "English",
		AppLink:   "https://apps.example/superapp",
		Message:   "Summer sale",
		Requester: "tester",
	}, gen.lastReq)

	state, err := storage.Load(context.Background(), "telegram", "42")
	require.NoError(t, err)
	assert.Nil(t, state, "push request is consumed once, then discarded")
}

func TestPushFlowGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("network timeout")}
	engine, storage := newEngine(t, &fakeCatalog{}, &fakeResolver{}, gen)
	m := &fakeMessenger{}

	walkPushFlow(t, engine, m)

	require.NotEmpty(t, m.texts)
	assert.Equal(t, "😕 Sorry, couldn't generate push notifications.\nPlease try again with /start", m.texts[len(m.texts)-1])

	state, err := storage.Load(context.Background(), "telegram", "42")
	require.NoError(t, err)
	assert.Nil(t, state, "failed generation still deletes the state")
}

func TestPushFlowAnonymousRequester(t *testing.T) {
	gen := &fakeGenerator{copyText: "copy"}
	engine, _ := newEngine(t, &fakeCatalog{}, &fakeResolver{}, gen)
	m := &fakeMessenger{}
	ctx := context.Background()

	require.NoError(t, engine.Restart(ctx, m, "telegram", "42", "42", ""))
	require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", "Use push-generator"))
	for _, answer := range []string{"App", "UK", "English", "link", "msg"} {
		require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", answer))
	}

	assert.Equal(t, "anonymous", gen.lastReq.Requester)
}

func TestRestartDropsActiveFlow(t *testing.T) {
	engine, storage := newEngine(t, fitnessCatalog(), &fakeResolver{}, &fakeGenerator{})
	m := &fakeMessenger{}
	ctx := context.Background()

	require.NoError(t, engine.Restart(ctx, m, "telegram", "42", "42", "tester"))
	require.NoError(t, engine.HandleMessage(ctx, m, "telegram", "42", "42", "Generate Content"))
	require.NoError(t, engine.Restart(ctx, m, "telegram", "42", "42", "tester"))

	state, err := storage.Load(ctx, "telegram", "42")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, mainmenu.WorkflowID, state.WorkflowID, "/start must reset to the main menu")
}
