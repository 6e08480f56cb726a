package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/ast"
)

func parseCommandStmt(t *testing.T, input string) *ast.Command {
	t.Helper()
	stmt := parseOneStatement(t, input)
	cmd, ok := stmt.(*ast.Command)
	require.True(t, ok, "expected *ast.Command, got %T", stmt)
	return cmd
}

func TestCreate3d(t *testing.T) {
	cmd := parseCommandStmt(t, `create3d cube at 20, 2.5, 0 size 1 color "#ff0000"`)
	require.Equal(t, "create3d", cmd.Name)
	require.True(t, cmd.SetsCursor)
	require.Len(t, cmd.Args, 6)
	require.Equal(t, "cube", cmd.Args[0].(*ast.String).Value)
	require.Equal(t, int64(20), cmd.Args[1].(*ast.Int).Value)
	require.Equal(t, 2.5, cmd.Args[2].(*ast.Float).Value)
	require.Equal(t, "#ff0000", cmd.Args[5].(*ast.String).Value)
}

func TestCreate3dDefaults(t *testing.T) {
	cmd := parseCommandStmt(t, "create3d sphere at 0, 1, 0")
	require.Len(t, cmd.Args, 6)
	require.Equal(t, int64(1), cmd.Args[4].(*ast.Int).Value)
	require.Equal(t, "", cmd.Args[5].(*ast.String).Value)
}

func TestCreate3dExpressionSlots(t *testing.T) {
	cmd := parseCommandStmt(t, "create3d cube at x * 2, y + 1, 0 size s")
	require.Len(t, cmd.Args, 6)
	require.IsType(t, &ast.Infix{}, cmd.Args[1])
	require.IsType(t, &ast.Ident{}, cmd.Args[4])
}

func TestScale3dMoveRotate(t *testing.T) {
	cmd := parseCommandStmt(t, "scale3d last3d to 2, 1, 2")
	require.Equal(t, "scale3d", cmd.Name)
	require.False(t, cmd.SetsCursor)
	require.Len(t, cmd.Args, 4)
	require.Equal(t, "last3d", cmd.Args[0].(*ast.Ident).Name)

	cmd = parseCommandStmt(t, "move last3d to 0, 5, 0")
	require.Equal(t, "move", cmd.Name)
	require.Len(t, cmd.Args, 4)

	cmd = parseCommandStmt(t, "rotate last3d by 0, 45, 0")
	require.Equal(t, "rotate", cmd.Name)
	require.Len(t, cmd.Args, 4)
}

func TestColor3d(t *testing.T) {
	cmd := parseCommandStmt(t, `color3d last3d to "#00ff00"`)
	require.Len(t, cmd.Args, 2)
	require.Equal(t, "#00ff00", cmd.Args[1].(*ast.String).Value)
}

func TestCollision3d(t *testing.T) {
	cmd := parseCommandStmt(t, "collision3d on last3d")
	require.Len(t, cmd.Args, 2)
	require.True(t, cmd.Args[1].(*ast.Bool).Value)

	cmd = parseCommandStmt(t, "collision3d off last3d")
	require.False(t, cmd.Args[1].(*ast.Bool).Value)
}

func TestPhysics3d(t *testing.T) {
	cmd := parseCommandStmt(t, "physics3d on last3d")
	require.Equal(t, "physics3d", cmd.Name)
	require.False(t, cmd.SetsCursor)
	require.Len(t, cmd.Args, 2)
	require.Equal(t, "last3d", cmd.Args[0].(*ast.Ident).Name)
	require.True(t, cmd.Args[1].(*ast.Bool).Value)

	cmd = parseCommandStmt(t, "physics3d off last3d")
	require.False(t, cmd.Args[1].(*ast.Bool).Value)
}

func TestVelocity3d(t *testing.T) {
	cmd := parseCommandStmt(t, "velocity3d last3d to 1, -2.5, 0")
	require.Equal(t, "velocity3d", cmd.Name)
	require.Len(t, cmd.Args, 4)
	require.Equal(t, "last3d", cmd.Args[0].(*ast.Ident).Name)
	require.IsType(t, &ast.Prefix{}, cmd.Args[2])
}

func TestGroundAndPlatform(t *testing.T) {
	cmd := parseCommandStmt(t, `ground at 0 color "#228B22" size 100`)
	require.Equal(t, "ground", cmd.Name)
	require.Len(t, cmd.Args, 3)

	cmd = parseCommandStmt(t, "platform at 10, 4, 0 size 4, 0.5, 4")
	require.Equal(t, "platform", cmd.Name)
	require.True(t, cmd.SetsCursor)
	require.Len(t, cmd.Args, 6)
}

func TestSpawnAndDestroy(t *testing.T) {
	cmd := parseCommandStmt(t, "spawn enemy at 5, 0, 5")
	require.True(t, cmd.SetsCursor)
	require.Len(t, cmd.Args, 4)
	require.Equal(t, "enemy", cmd.Args[0].(*ast.String).Value)

	cmd = parseCommandStmt(t, "destroy last3d")
	require.Len(t, cmd.Args, 1)
}

func TestNpcDialogueTalk(t *testing.T) {
	cmd := parseCommandStmt(t, `npc "Merchant" at 3, 0, 3 color "#9900ff"`)
	require.Equal(t, "npc", cmd.Name)
	require.Len(t, cmd.Args, 5)
	require.Equal(t, "Merchant", cmd.Args[0].(*ast.String).Value)

	cmd = parseCommandStmt(t, `dialogue "Merchant" says "Welcome, traveler!"`)
	require.Len(t, cmd.Args, 2)
	require.Equal(t, "Welcome, traveler!", cmd.Args[1].(*ast.String).Value)

	cmd = parseCommandStmt(t, `talk to "Merchant"`)
	require.Len(t, cmd.Args, 1)
}

func TestPlayerCommands(t *testing.T) {
	cmd := parseCommandStmt(t, "player at 0, 1, 0")
	require.Len(t, cmd.Args, 3)

	cmd = parseCommandStmt(t, "speed is 12")
	require.Len(t, cmd.Args, 1)

	cmd = parseCommandStmt(t, "health is 100")
	require.Len(t, cmd.Args, 2)
	require.Equal(t, "is", cmd.Args[0].(*ast.String).Value)

	cmd = parseCommandStmt(t, "health subtract 25")
	require.Equal(t, "subtract", cmd.Args[0].(*ast.String).Value)
}

func TestJump(t *testing.T) {
	cmd := parseCommandStmt(t, "jump")
	require.Equal(t, "jump", cmd.Name)
	require.Len(t, cmd.Args, 1)
	require.Equal(t, int64(10), cmd.Args[0].(*ast.Int).Value)

	cmd = parseCommandStmt(t, "jump force 25")
	require.Len(t, cmd.Args, 1)
	require.Equal(t, int64(25), cmd.Args[0].(*ast.Int).Value)
}

func TestJumpIsNotReservedAsExpression(t *testing.T) {
	stmt := parseOneStatement(t, "var jump = 3")
	varStmt, ok := stmt.(*ast.Var)
	require.True(t, ok)
	require.Equal(t, "jump", varStmt.Name.Name)

	stmt = parseOneStatement(t, "jump = jump + 1")
	_, ok = stmt.(*ast.Assign)
	require.True(t, ok)
}

func TestNpcBindsLoweredName(t *testing.T) {
	cmd := parseCommandStmt(t, `npc "Guard" at 5, 0, 5`)
	require.Equal(t, "guard", cmd.BindsName)

	cmd = parseCommandStmt(t, `dialogue "Guard" says "Halt"`)
	require.Equal(t, "", cmd.BindsName)
}

func TestCameraAndLookat(t *testing.T) {
	cmd := parseCommandStmt(t, "camera at 0, 10, -20")
	require.Len(t, cmd.Args, 3)

	cmd = parseCommandStmt(t, "lookat 0, 0, 0")
	require.Len(t, cmd.Args, 3)
}

func TestCommandWordsAreNotReserved(t *testing.T) {
	stmt := parseOneStatement(t, "speed = 10")
	assign, ok := stmt.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "speed", assign.Name.Name)

	stmt = parseOneStatement(t, "var v = speed * 2")
	varStmt, ok := stmt.(*ast.Var)
	require.True(t, ok)
	require.IsType(t, &ast.Infix{}, varStmt.Value)
}

func TestCommandErrors(t *testing.T) {
	tests := []string{
		"create3d cube to 1, 2, 3",
		"collision3d maybe last3d",
		"health raise 5",
		`dialogue "Bob" at "hello"`,
		"platform at 1, 2 size 1, 1, 1",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(context.Background(), input)
			require.Error(t, err)
		})
	}
}
