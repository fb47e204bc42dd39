package cart

import "sync"

// カート1行分。価格は追加時点のスナップショット（カタログの変更は反映しない）。
type Line struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	ImageURL  string `json:"image_url,omitempty"`
	Quantity  int64  `json:"quantity"`
}

// Snapshot は読み取り専用のコピー。合計は毎回再計算する（キャッシュしない）。
type Snapshot struct {
	Lines         []Line `json:"lines"`
	TotalQuantity int64  `json:"total_quantity"`
	TotalAmount   int64  `json:"total_amount"`
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Store はセッションごとのカートをメモリ上に保持する。
// 1セッションの操作は呼び出し側で直列化される前提だが、
// Store自体は複数セッションを束ねるためロックで守る。
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Line)}
}

func (s *Store) ensureInit() {
	if s == nil || s.carts == nil {
		panic("cart: store used before NewStore")
	}
}

// AddItem は同一商品なら数量を加算、無ければ末尾に追加する。
// qty < 1 は呼び出し側の契約違反なので何もしない。
func (s *Store) AddItem(sessionID string, line Line, qty int64) {
	s.ensureInit()
	if qty < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += qty
			return
		}
	}

	line.Quantity = qty
	s.carts[sessionID] = append(lines, line)
}

// UpdateQuantity は数量を「設定」する（加算ではない）。qty <= 0 は行ごと削除。
func (s *Store) UpdateQuantity(sessionID string, productID int64, qty int64) {
	s.ensureInit()

	if qty <= 0 {
		s.RemoveItem(sessionID, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = qty
			return
		}
	}
}

// RemoveItem は行を削除。無ければ何もしない。
func (s *Store) RemoveItem(sessionID string, productID int64) {
	s.ensureInit()

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// Clear はセッションのカートを空にする（注文確定後に呼ぶ）。
func (s *Store) Clear(sessionID string) {
	s.ensureInit()

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}

// Snapshot は現在の行のコピーと再計算した合計を返す。
func (s *Store) Snapshot(sessionID string) Snapshot {
	s.ensureInit()

	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[sessionID]
	snap := Snapshot{Lines: make([]Line, len(lines))}
	copy(snap.Lines, lines)

	for _, l := range snap.Lines {
		snap.TotalQuantity += l.Quantity
		snap.TotalAmount += l.Quantity * l.UnitPrice
	}
	return snap
}
