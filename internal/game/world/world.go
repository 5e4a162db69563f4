// Package world holds the drive simulation: terrain ring, vehicle,
// camera and the pending vehicle asset. It has no GPU dependencies; the
// game loop turns each Frame into renderer calls.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taharazashaikh97/roads/internal/assets"
	"github.com/taharazashaikh97/roads/internal/config"
	"github.com/taharazashaikh97/roads/internal/engine/camera"
	"github.com/taharazashaikh97/roads/internal/engine/model"
	"github.com/taharazashaikh97/roads/internal/engine/terrain"
	"github.com/taharazashaikh97/roads/internal/engine/vehicle"
	"github.com/taharazashaikh97/roads/internal/game/controls"
	"github.com/taharazashaikh97/roads/internal/logger"
)

// TileUpdate tells the renderer what a ring slot now shows. Mesh is nil
// when the slot only moved and keeps its previous geometry.
type TileUpdate struct {
	Slot   int
	Index  int
	Offset float64 // z translation of the tile origin
	Mesh   *terrain.Mesh
	Trees  []terrain.Tree
}

// Rebaked reports whether the update carries new geometry.
func (u TileUpdate) Rebaked() bool {
	return u.Mesh != nil
}

// Frame is the outcome of one Tick.
type Frame struct {
	Vehicle  vehicle.State
	Attached bool

	// VehicleMesh is set on the tick the vehicle asset arrives.
	VehicleMesh *model.Mesh

	Tiles    []TileUpdate
	Recycled int // single-tile recycles this tick
}

// World is the per-session simulation context.
type World struct {
	field  *terrain.Heightfield
	tile   terrain.TileParams
	decor  terrain.DecorParams
	ring   *terrain.Ring
	rebake bool

	controller *vehicle.Controller
	camera     *camera.FollowCamera
	projection *camera.Projection

	vehicle assets.Slot[*model.Mesh]
	pending *assets.Pending[*model.Mesh]

	log *zap.Logger
}

// New builds a world from cfg and starts loading the vehicle model from m.
func New(cfg *config.Config, m *assets.Manager) (*World, error) {
	field, err := terrain.NewHeightfield(hillParams(cfg.Terrain), roadParams(cfg.Road))
	if err != nil {
		return nil, fmt.Errorf("heightfield: %w", err)
	}

	tile := tileParams(cfg.Terrain)
	if err := tile.Validate(); err != nil {
		return nil, fmt.Errorf("tiles: %w", err)
	}
	decor := decorParams(cfg.Decor)
	if err := decor.Validate(); err != nil {
		return nil, fmt.Errorf("decor: %w", err)
	}

	ring, err := terrain.NewRing(cfg.Terrain.TileCount, cfg.Terrain.TileSize, cfg.Terrain.Trailing)
	if err != nil {
		return nil, fmt.Errorf("tile ring: %w", err)
	}

	controller, err := vehicle.NewController(vehicleParams(cfg.Vehicle))
	if err != nil {
		return nil, fmt.Errorf("vehicle: %w", err)
	}
	if cfg.Vehicle.FollowTerrain {
		controller.SetGround(field)
	}

	cam, err := camera.NewFollowCamera(followParams(cfg.Camera))
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	w := &World{
		field:      field,
		tile:       tile,
		decor:      decor,
		ring:       ring,
		rebake:     cfg.Terrain.RebakeOnRecycle,
		controller: controller,
		camera:     cam,
		projection: camera.NewProjection(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far, cfg.Graphics.Width, cfg.Graphics.Height),
		log:        logger.Named("world"),
	}

	w.pending = assets.LoadAsync(m, cfg.Assets.VehicleModel, DecodeVehicle)
	w.log.Info("world created",
		zap.Int("tiles", ring.Len()),
		zap.Float64("tile_size", ring.Size()),
		zap.Bool("rebake", w.rebake),
		zap.String("vehicle", cfg.Assets.VehicleModel),
	)
	return w, nil
}

// DecodeVehicle parses a YAML vehicle description and tessellates it.
func DecodeVehicle(data []byte) (*model.Mesh, error) {
	desc, err := model.Parse(data)
	if err != nil {
		return nil, err
	}
	return model.BuildMesh(desc)
}

// InitialTiles bakes every slot of the ring in its starting position.
func (w *World) InitialTiles() ([]TileUpdate, error) {
	updates := make([]TileUpdate, 0, w.ring.Len())
	for slot := 0; slot < w.ring.Len(); slot++ {
		u, err := w.bake(slot, w.ring.Index(slot))
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}

// Tick advances the simulation by dt seconds under the given controls.
func (w *World) Tick(dt float64, in controls.State) Frame {
	var f Frame
	f.VehicleMesh = w.pollVehicle()

	w.controller.Update(dt, in)
	state := w.controller.State()

	recycles := w.ring.Update(state.Progress())
	f.Recycled = w.ring.Moves(recycles)
	if len(recycles) > 0 {
		// A long jump can move one slot several times; only its final
		// position matters.
		last := make(map[int]int, len(recycles))
		for i, r := range recycles {
			last[r.Slot] = i
		}
		for i, r := range recycles {
			if last[r.Slot] == i {
				f.Tiles = append(f.Tiles, w.recycled(r))
			}
		}
	}

	if w.controller.Attached() {
		w.camera.Update(state)
	}

	f.Vehicle = state
	f.Attached = w.controller.Attached()
	return f
}

// pollVehicle checks the pending load once. It returns the mesh on the
// tick it arrives and nil otherwise. Failures are logged and not retried.
func (w *World) pollVehicle() *model.Mesh {
	if w.pending == nil {
		return nil
	}
	res, ok := w.pending.Poll()
	if !ok {
		return nil
	}
	w.pending = nil

	if res.Err != nil {
		w.log.Error("vehicle load failed", zap.String("path", res.Path), zap.Error(res.Err))
		return nil
	}
	if !w.vehicle.Set(res.Value) {
		return nil
	}
	w.controller.Attach()
	w.log.Info("vehicle attached",
		zap.String("path", res.Path),
		zap.Int("vertices", len(res.Value.Vertices)),
	)
	return res.Value
}

func (w *World) recycled(r terrain.Recycle) TileUpdate {
	if w.rebake {
		u, err := w.bake(r.Slot, r.To)
		if err == nil {
			return u
		}
		w.log.Error("tile rebake failed", zap.Int("index", r.To), zap.Error(err))
	}
	return TileUpdate{
		Slot:   r.Slot,
		Index:  r.To,
		Offset: w.ring.Offset(r.Slot),
	}
}

func (w *World) bake(slot, index int) (TileUpdate, error) {
	mesh, err := terrain.BuildTile(w.field, index, w.tile)
	if err != nil {
		return TileUpdate{}, fmt.Errorf("tile %d: %w", index, err)
	}
	trees, err := terrain.ScatterTrees(w.field, index, w.tile, w.decor)
	if err != nil {
		return TileUpdate{}, fmt.Errorf("tile %d trees: %w", index, err)
	}
	return TileUpdate{
		Slot:   slot,
		Index:  index,
		Offset: w.ring.Offset(slot),
		Mesh:   mesh,
		Trees:  trees,
	}, nil
}

// Loading reports whether the vehicle load is still outstanding.
func (w *World) Loading() bool {
	return w.pending != nil
}

// Vehicle returns the vehicle mesh once it has arrived.
func (w *World) Vehicle() (*model.Mesh, bool) {
	return w.vehicle.Get()
}

// Controller returns the vehicle controller.
func (w *World) Controller() *vehicle.Controller {
	return w.controller
}

// Camera returns the follow camera.
func (w *World) Camera() *camera.FollowCamera {
	return w.camera
}

// Projection returns the camera projection.
func (w *World) Projection() *camera.Projection {
	return w.projection
}

// Ring returns the terrain tile ring.
func (w *World) Ring() *terrain.Ring {
	return w.ring
}

// Heightfield returns the terrain generator.
func (w *World) Heightfield() *terrain.Heightfield {
	return w.field
}

// Resize updates the projection for a new viewport size.
func (w *World) Resize(width, height int) {
	w.projection.Resize(width, height)
}

// Zoom moves the camera closer (positive) or further (negative).
func (w *World) Zoom(delta float64) {
	w.camera.Zoom(delta)
}
