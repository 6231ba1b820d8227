package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_port "github.com/phreebee/dockyard/internal/application/port/mocks"
	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/domain/entity"
)

func leftRoster() []entity.PanelSpec {
	return []entity.PanelSpec{
		{ID: outlineID, Name: "Outline", Edge: entity.EdgeLeft, Visible: true, Track: 40},
		{ID: propsID, Name: "Properties", Edge: entity.EdgeLeft, Visible: true, Track: 60},
	}
}

func TestDockManager_DecoratesOncePerDocument(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	shell := mock_port.NewMockShell(ctrl)
	shell.EXPECT().CurrentContext().Return(entity.NoKey, false).AnyTimes()

	outlineA, propsA, outlineB := &fakeContent{}, &fakeContent{}, &fakeContent{}
	shell.EXPECT().Decorate(gomock.Any(), outlineID, entity.ContextKey("a.go")).Return(outlineA, nil).Times(1)
	shell.EXPECT().Decorate(gomock.Any(), propsID, entity.ContextKey("a.go")).Return(propsA, nil).Times(1)
	shell.EXPECT().Decorate(gomock.Any(), outlineID, entity.ContextKey("b.txt")).Return(outlineB, nil).Times(1)
	// A refusal is not remembered: the view is asked again next time.
	shell.EXPECT().Decorate(gomock.Any(), propsID, entity.ContextKey("b.txt")).Return(nil, nil).Times(2)

	m, err := usecase.NewDockManager(shell, &recordingSink{}, usecase.DefaultDockSettings(), leftRoster())
	require.NoError(t, err)

	for _, key := range []entity.ContextKey{"a.go", "b.txt", "a.go", "b.txt"} {
		require.NoError(t, m.ViewSelect(ctx, key))
	}

	props := mustPanel(t, m, propsID)
	assert.True(t, props.Hidden())
	assert.False(t, propsA.Visible())
	assert.False(t, outlineA.Visible())
	assert.True(t, outlineB.Visible())
	assert.False(t, mustSide(t, m, entity.EdgeLeft).Hidden())
}
